// Package printer renders parsed C types and function signatures back into
// the surface syntax a user would recognize, and dumps a whole type map for
// the dump command. There is no AST-to-WGSL pretty-printer here anymore;
// this package's only job is turning internal/ctypes values into text.
package printer

import (
	"fmt"
	"sort"
	"strings"

	"codeberg.org/saruga/ctypectx/internal/cast"
	"codeberg.org/saruga/ctypectx/internal/ctypes"
)

// TypeString renders t as a C type name. A struct or union type that is
// referenced directly (not through a pointer, array, or further
// declarator) is special-cased to its tag ("struct Point", or "anon struct"
// when untagged), matching how a human would name it in conversation
// rather than spelling out its full member list.
func TypeString(t cast.Type) string {
	if td, ok := t.(*cast.TypeDecl); ok {
		if sou, ok := td.Inner.(*cast.StructOrUnion); ok {
			if sou.Name != "" {
				return sou.Kind.String() + " " + sou.Name
			}
			return "anon " + sou.Kind.String()
		}
	}
	decl, spec := buildDeclarator(t, "", false)
	if decl == "" {
		return spec
	}
	return spec + " " + decl
}

// buildDeclarator applies the usual "declaration follows use" rule,
// accumulating the declarator text from the inside out. inner is the
// already-built declarator fragment for whatever sits at this level;
// innerParen reports whether inner must be parenthesized before a
// following [] or () binds to it (true exactly when inner was just
// prefixed with a pointer's *).
func buildDeclarator(t cast.Type, inner string, innerParen bool) (decl, spec string) {
	switch v := t.(type) {
	case *cast.PtrDecl:
		return buildDeclarator(v.Inner, "*"+inner, true)

	case *cast.ArrayDecl:
		dim := ""
		if v.Dim != nil {
			dim = cast.ExprToC(v.Dim)
		}
		return buildDeclarator(v.Inner, wrapParen(inner, innerParen)+"["+dim+"]", false)

	case *cast.FuncDecl:
		return buildDeclarator(v.Return, wrapParen(inner, innerParen)+"("+paramsString(v.Args)+")", false)

	case *cast.TypeDecl:
		return inner, specString(v.Inner)

	default:
		return inner, "?"
	}
}

func wrapParen(s string, needed bool) string {
	if needed {
		return "(" + s + ")"
	}
	return s
}

func specString(spec cast.TypeSpec) string {
	switch v := spec.(type) {
	case *cast.IdentifierType:
		return strings.Join(v.Names, " ")
	case *cast.Enum:
		if v.Name != "" {
			return "enum " + v.Name
		}
		return "enum {anon}"
	case *cast.StructOrUnion:
		if v.Name != "" {
			return v.Kind.String() + " " + v.Name
		}
		return v.Kind.String() + " {anon}"
	default:
		return "?"
	}
}

func paramsString(args *cast.ParamList) string {
	if args == nil {
		return ""
	}
	var parts []string
	for _, p := range args.Params {
		switch a := p.(type) {
		case *cast.EllipsisParam:
			parts = append(parts, "...")
		case *cast.Decl:
			d, spec := buildDeclarator(a.Type, a.Name, false)
			if d == "" {
				parts = append(parts, spec)
			} else {
				parts = append(parts, spec+" "+d)
			}
		case *cast.Typename:
			parts = append(parts, TypeString(a.Type))
		case *cast.Ident:
			parts = append(parts, a.Name)
		}
	}
	if len(parts) == 0 {
		return "void"
	}
	return strings.Join(parts, ", ")
}

// FunctionString renders one function's signature as "name: ret(params)",
// with params == "void" for a known-empty parameter list and "" elided for
// a declarator that gave no parameter list at all.
func FunctionString(name string, fn *ctypes.Function) string {
	ret := "void"
	if fn.RetType != nil {
		ret = TypeString(fn.RetType)
	}

	var paramsStr string
	if fn.Params != nil {
		parts := make([]string, 0, len(fn.Params)+1)
		for _, p := range fn.Params {
			parts = append(parts, TypeString(p.Type))
		}
		if fn.Variadic {
			parts = append(parts, "...")
		}
		if len(parts) == 0 {
			paramsStr = "void"
		} else {
			paramsStr = strings.Join(parts, ", ")
		}
	}

	return fmt.Sprintf("%s: %s(%s)", name, ret, paramsStr)
}

func sortedOffsets(fields map[int][]ctypes.StructField) []int {
	offs := make([]int, 0, len(fields))
	for o := range fields {
		offs = append(offs, o)
	}
	sort.Ints(offs)
	return offs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
