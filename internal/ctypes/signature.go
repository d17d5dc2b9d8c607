package ctypes

import (
	"codeberg.org/saruga/ctypectx/internal/cast"
	"codeberg.org/saruga/ctypectx/internal/diagnostic"
)

// ParseFunction converts a function declarator into a Function: its
// return type (nil for void), its parameter list (nil for "declared with
// an empty parameter list", unknown arity), and whether it is variadic.
func ParseFunction(fn *cast.FuncDecl) (*Function, error) {
	var params []Param
	variadic := false
	hasVoid := false

	if fn.Args != nil {
		for _, arg := range fn.Args.Params {
			switch a := arg.(type) {
			case *cast.EllipsisParam:
				variadic = true
			case *cast.Decl:
				params = append(params, Param{Type: a.Type, Name: a.Name})
			case *cast.Ident:
				return nil, diagnostic.Newf("K&R-style function header is not supported: %s", a.Name).At(fn)
			case *cast.Typename:
				if IsVoid(a.Type) {
					hasVoid = true
				} else {
					params = append(params, Param{Type: a.Type, Name: ""})
				}
			}
		}
	}

	var maybeParams []Param
	if len(params) == 0 && !hasVoid && !variadic {
		// Declaration without a parameter list at all: unknown arity.
		maybeParams = nil
	} else {
		maybeParams = params
		if maybeParams == nil {
			maybeParams = []Param{}
		}
	}

	var retType cast.Type
	if !IsVoid(fn.Return) {
		retType = fn.Return
	}

	return &Function{RetType: retType, Params: maybeParams, Variadic: variadic}, nil
}
