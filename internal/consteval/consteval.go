// Package consteval folds the limited subset of C constant expressions this
// module needs: array dimensions and bitfield widths. It is Component A of
// the layout engine's dependency chain.
package consteval

import (
	"strconv"
	"strings"

	"codeberg.org/saruga/ctypectx/internal/cast"
	"codeberg.org/saruga/ctypectx/internal/diagnostic"
)

// Eval folds expr to an int64. It accepts integer literals (C literal
// rules: trailing l/L/u/U stripped, base inferred from a 0x prefix, a
// leading 0, or decimal) and BinaryExpr with operator in {+, -, *, <<, >>},
// applied recursively. Anything else is a diagnostic.Failure naming the
// stringified expression. Arithmetic happens in Go's signed int64 domain;
// overflow is not checked, since array dimensions and bitfield widths never
// legitimately approach that range.
func Eval(expr cast.Expr) (int64, error) {
	switch e := expr.(type) {
	case *cast.IntLiteral:
		v, err := strconv.ParseInt(strings.TrimRight(e.Value, "lLuU"), 0, 64)
		if err != nil {
			return 0, diagnostic.Newf("Failed to parse %s as an int literal", e.Value).At(e)
		}
		return v, nil

	case *cast.BinaryExpr:
		lhs, err := Eval(e.Left)
		if err != nil {
			return 0, err
		}
		rhs, err := Eval(e.Right)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case cast.OpAdd:
			return lhs + rhs, nil
		case cast.OpSub:
			return lhs - rhs, nil
		case cast.OpMul:
			return lhs * rhs, nil
		case cast.OpShl:
			return lhs << uint(rhs), nil
		case cast.OpShr:
			return lhs >> uint(rhs), nil
		}
	}

	return 0, diagnostic.Newf(
		"Failed to evaluate expression %s at compile time; only simple arithmetic is supported for now",
		cast.ExprToC(expr),
	).At(expr)
}
