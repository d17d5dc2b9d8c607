// Package typemap implements Component F: the single pre-order traversal
// that turns a parsed translation unit into a populated ctypes.TypeMap. It
// is the only place that walks an entire AST; every other package in this
// module operates on one declarator, one struct, or one function at a time.
package typemap

import (
	"codeberg.org/saruga/ctypectx/internal/cast"
	"codeberg.org/saruga/ctypectx/internal/ctypes"
	"codeberg.org/saruga/ctypectx/internal/diagnostic"
)

// Build walks unit once and returns the TypeMap it denotes: every typedef,
// every global variable's declared type, every function's signature, and
// the layout of every struct/union definition reachable from a top-level
// declaration.
func Build(unit *cast.TranslationUnit) (*ctypes.TypeMap, error) {
	tm := ctypes.NewTypeMap()

	for _, item := range unit.ExternalDecls {
		switch n := item.(type) {
		case *cast.Typedef:
			tm.Typedefs[n.Name] = n.Type

		case *cast.FuncDef:
			fd, ok := n.Decl.Type.(*cast.FuncDecl)
			if !ok {
				return nil, diagnostic.Newf("function definition %s has a non-function declarator", n.Decl.Name).At(n)
			}
			fn, err := ctypes.ParseFunction(fd)
			if err != nil {
				return nil, err
			}
			tm.Functions[n.Decl.Name] = fn

		case *cast.Decl:
			if fd, ok := n.Type.(*cast.FuncDecl); ok {
				fn, err := ctypes.ParseFunction(fd)
				if err != nil {
					return nil, err
				}
				tm.Functions[n.Name] = fn
			}
		}
	}

	v := &visitor{tm: tm, lc: ctypes.NewLayoutComputer(tm)}
	for _, item := range unit.ExternalDecls {
		if err := v.visitExternal(item); err != nil {
			return nil, err
		}
	}

	return tm, nil
}

// visitor runs the second pass: recording variable types and discovering
// struct/union/enum definitions reachable from a declarator's type tree.
// It deliberately mirrors the depth the original visitor reached and no
// further: it does not descend into a function declarator's parameter
// types (a prototype-only struct parameter is never registered by this
// pass — parse_struct reaches it instead if the same tag is ever used as a
// variable or member type), and it does not descend into a struct or
// union's own member list (nested tag definitions there are discovered as
// a side effect of ParseStruct parsing that member, not by this visitor).
type visitor struct {
	tm *ctypes.TypeMap
	lc *ctypes.LayoutComputer
}

func (v *visitor) visitExternal(item cast.Node) error {
	switch n := item.(type) {
	case *cast.Typedef:
		return v.visitType(n.Type)

	case *cast.FuncDef:
		if n.Decl.Name != "" {
			v.tm.VarTypes[n.Decl.Name] = n.Decl.Type
		}
		return nil

	case *cast.Decl:
		if n.Name != "" {
			v.tm.VarTypes[n.Name] = n.Type
		}
		if _, isFunc := n.Type.(*cast.FuncDecl); !isFunc {
			return v.visitType(n.Type)
		}
		return nil
	}
	return nil
}

// visitType descends through pointer and array declarators to the
// TypeDecl at the bottom, registering any struct/union definition or named
// enum found there. Function declarators are not descended into.
func (v *visitor) visitType(t cast.Type) error {
	switch n := t.(type) {
	case *cast.PtrDecl:
		return v.visitType(n.Inner)

	case *cast.ArrayDecl:
		return v.visitType(n.Inner)

	case *cast.FuncDecl:
		return nil

	case *cast.TypeDecl:
		switch inner := n.Inner.(type) {
		case *cast.StructOrUnion:
			if inner.Decls != nil {
				if _, err := v.lc.ParseStruct(inner); err != nil {
					return err
				}
			}
		case *cast.Enum:
			if inner.Name != "" {
				v.tm.Typedefs[inner.Name] = cast.BasicType("int")
			}
		}
	}
	return nil
}
