// Package astjson decodes the JSON encoding of a translation unit that
// cmd/ctypectx reads from disk or stdin in place of a real C parser: this
// module's own scope stops at the AST boundary (spec.md §6), so a caller
// that has no parser on hand can still drive the analyzer by handing it an
// already-parsed tree. The shape is a discriminated union keyed by a
// "kind" field at every node, decoded with gjson instead of a fixed set of
// json.Unmarshaler structs so that one node kind's odd fields (bitsize,
// dim, declName) never have to be threaded through every other kind.
package astjson

import (
	"fmt"

	"github.com/tidwall/gjson"

	"codeberg.org/saruga/ctypectx/internal/cast"
)

// DecodeTranslationUnit parses the top-level {"externalDecls": [...]} JSON
// document into a *cast.TranslationUnit.
func DecodeTranslationUnit(data []byte) (*cast.TranslationUnit, error) {
	root := gjson.ParseBytes(data)
	if !root.Exists() {
		return nil, fmt.Errorf("astjson: empty document")
	}
	decls := root.Get("externalDecls")
	if !decls.IsArray() {
		return nil, fmt.Errorf("astjson: missing externalDecls array")
	}

	alloc := cast.NewIDAllocator()
	var out []cast.Node
	var decodeErr error
	decls.ForEach(func(_, item gjson.Result) bool {
		n, err := decodeNode(item, alloc)
		if err != nil {
			decodeErr = err
			return false
		}
		out = append(out, n)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return &cast.TranslationUnit{ExternalDecls: out}, nil
}

func decodeNode(v gjson.Result, alloc *cast.IDAllocator) (cast.Node, error) {
	kind := v.Get("kind").String()
	switch kind {
	case "Typedef":
		t, err := decodeType(v.Get("type"), alloc)
		if err != nil {
			return nil, err
		}
		return &cast.Typedef{Name: v.Get("name").String(), Type: t}, nil

	case "FuncDef":
		d, err := decodeNode(v.Get("decl"), alloc)
		if err != nil {
			return nil, err
		}
		decl, ok := d.(*cast.Decl)
		if !ok {
			return nil, fmt.Errorf("astjson: FuncDef.decl must be a Decl")
		}
		return &cast.FuncDef{Decl: decl}, nil

	case "Decl":
		t, err := decodeType(v.Get("type"), alloc)
		if err != nil {
			return nil, err
		}
		var bitsize cast.Expr
		if bv := v.Get("bitsize"); bv.Exists() {
			bitsize, err = decodeExpr(bv)
			if err != nil {
				return nil, err
			}
		}
		return &cast.Decl{Name: v.Get("name").String(), Type: t, Bitsize: bitsize}, nil

	case "EllipsisParam":
		return &cast.EllipsisParam{}, nil

	case "Typename":
		t, err := decodeType(v.Get("type"), alloc)
		if err != nil {
			return nil, err
		}
		return &cast.Typename{Type: t}, nil

	case "Ident":
		return &cast.Ident{Name: v.Get("name").String()}, nil

	default:
		if isExprKind(kind) {
			return decodeExpr(v)
		}
		if isTypeKind(kind) {
			return decodeType(v, alloc)
		}
		return nil, fmt.Errorf("astjson: unrecognized node kind %q", kind)
	}
}

func isExprKind(kind string) bool {
	switch kind {
	case "IntLiteral", "BinaryExpr", "OtherExpr":
		return true
	default:
		return false
	}
}

func isTypeKind(kind string) bool {
	switch kind {
	case "TypeDecl", "PtrDecl", "ArrayDecl", "FuncDecl":
		return true
	default:
		return false
	}
}

func decodeExpr(v gjson.Result) (cast.Expr, error) {
	switch v.Get("kind").String() {
	case "IntLiteral":
		return &cast.IntLiteral{Value: v.Get("value").String()}, nil

	case "Ident":
		return &cast.Ident{Name: v.Get("name").String()}, nil

	case "BinaryExpr":
		op, err := decodeBinaryOp(v.Get("op").String())
		if err != nil {
			return nil, err
		}
		left, err := decodeExpr(v.Get("left"))
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(v.Get("right"))
		if err != nil {
			return nil, err
		}
		return &cast.BinaryExpr{Op: op, Left: left, Right: right}, nil

	case "OtherExpr":
		return &cast.OtherExpr{Source: v.Get("source").String()}, nil

	default:
		return nil, fmt.Errorf("astjson: unrecognized expression kind %q", v.Get("kind").String())
	}
}

func decodeBinaryOp(s string) (cast.BinaryOp, error) {
	switch s {
	case "+":
		return cast.OpAdd, nil
	case "-":
		return cast.OpSub, nil
	case "*":
		return cast.OpMul, nil
	case "<<":
		return cast.OpShl, nil
	case ">>":
		return cast.OpShr, nil
	default:
		return 0, fmt.Errorf("astjson: unrecognized binary operator %q", s)
	}
}

func decodeType(v gjson.Result, alloc *cast.IDAllocator) (cast.Type, error) {
	switch v.Get("kind").String() {
	case "PtrDecl":
		inner, err := decodeType(v.Get("inner"), alloc)
		if err != nil {
			return nil, err
		}
		return &cast.PtrDecl{Inner: inner}, nil

	case "ArrayDecl":
		inner, err := decodeType(v.Get("inner"), alloc)
		if err != nil {
			return nil, err
		}
		var dim cast.Expr
		if dv := v.Get("dim"); dv.Exists() {
			dim, err = decodeExpr(dv)
			if err != nil {
				return nil, err
			}
		}
		return &cast.ArrayDecl{Inner: inner, Dim: dim}, nil

	case "FuncDecl":
		ret, err := decodeType(v.Get("return"), alloc)
		if err != nil {
			return nil, err
		}
		var args *cast.ParamList
		if av := v.Get("args"); av.Exists() {
			args, err = decodeParamList(av, alloc)
			if err != nil {
				return nil, err
			}
		}
		return &cast.FuncDecl{Args: args, Return: ret}, nil

	case "TypeDecl":
		spec, err := decodeTypeSpec(v.Get("inner"), alloc)
		if err != nil {
			return nil, err
		}
		return &cast.TypeDecl{DeclName: v.Get("declName").String(), Inner: spec}, nil

	default:
		return nil, fmt.Errorf("astjson: unrecognized type kind %q", v.Get("kind").String())
	}
}

func decodeParamList(v gjson.Result, alloc *cast.IDAllocator) (*cast.ParamList, error) {
	params := v.Get("params")
	if !params.IsArray() {
		return nil, fmt.Errorf("astjson: ParamList.params must be an array")
	}
	var out []cast.Node
	var decodeErr error
	params.ForEach(func(_, item gjson.Result) bool {
		n, err := decodeNode(item, alloc)
		if err != nil {
			decodeErr = err
			return false
		}
		out = append(out, n)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return &cast.ParamList{Params: out}, nil
}

func decodeTypeSpec(v gjson.Result, alloc *cast.IDAllocator) (cast.TypeSpec, error) {
	switch v.Get("kind").String() {
	case "IdentifierType":
		var names []string
		v.Get("names").ForEach(func(_, n gjson.Result) bool {
			names = append(names, n.String())
			return true
		})
		return &cast.IdentifierType{Names: names}, nil

	case "Enum":
		var members []cast.EnumMember
		var decodeErr error
		v.Get("members").ForEach(func(_, m gjson.Result) bool {
			var value cast.Expr
			if mv := m.Get("value"); mv.Exists() {
				var err error
				value, err = decodeExpr(mv)
				if err != nil {
					decodeErr = err
					return false
				}
			}
			members = append(members, cast.EnumMember{Name: m.Get("name").String(), Value: value})
			return true
		})
		if decodeErr != nil {
			return nil, decodeErr
		}
		if !v.Get("members").Exists() {
			members = nil
		}
		return &cast.Enum{Name: v.Get("name").String(), Members: members}, nil

	case "StructOrUnion":
		kind := cast.KindStruct
		if v.Get("union").Bool() {
			kind = cast.KindUnion
		}
		var decls []cast.Node
		if dv := v.Get("decls"); dv.Exists() {
			var decodeErr error
			dv.ForEach(func(_, item gjson.Result) bool {
				n, err := decodeNode(item, alloc)
				if err != nil {
					decodeErr = err
					return false
				}
				decls = append(decls, n)
				return true
			})
			if decodeErr != nil {
				return nil, decodeErr
			}
			if decls == nil {
				decls = []cast.Node{}
			}
		}
		return cast.NewStructOrUnion(alloc, kind, v.Get("name").String(), decls), nil

	default:
		return nil, fmt.Errorf("astjson: unrecognized type-spec kind %q", v.Get("kind").String())
	}
}
