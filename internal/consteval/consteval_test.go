package consteval

import (
	"testing"

	"codeberg.org/saruga/ctypectx/internal/cast"
)

func TestEvalIntLiteral(t *testing.T) {
	cases := []struct {
		value string
		want  int64
	}{
		{"42", 42},
		{"0x2A", 42},
		{"010", 8},
		{"4L", 4},
		{"4UL", 4},
	}
	for _, c := range cases {
		got, err := Eval(&cast.IntLiteral{Value: c.value})
		if err != nil {
			t.Errorf("%s: %v", c.value, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: got %d, want %d", c.value, got, c.want)
		}
	}
}

func TestEvalBinaryOps(t *testing.T) {
	lit := func(v string) cast.Expr { return &cast.IntLiteral{Value: v} }
	cases := []struct {
		op   cast.BinaryOp
		l, r string
		want int64
	}{
		{cast.OpAdd, "2", "3", 5},
		{cast.OpSub, "5", "3", 2},
		{cast.OpMul, "4", "3", 12},
		{cast.OpShl, "1", "4", 16},
		{cast.OpShr, "16", "2", 4},
	}
	for _, c := range cases {
		expr := &cast.BinaryExpr{Op: c.op, Left: lit(c.l), Right: lit(c.r)}
		got, err := Eval(expr)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("%s: got %d, want %d", c.op, got, c.want)
		}
	}
}

func TestEvalRejectsUnsupportedExpr(t *testing.T) {
	if _, err := Eval(&cast.OtherExpr{Source: "foo()"}); err == nil {
		t.Error("expected error for unsupported expression")
	}
}

func TestEvalRejectsMalformedLiteral(t *testing.T) {
	if _, err := Eval(&cast.IntLiteral{Value: "not-a-number"}); err == nil {
		t.Error("expected error for malformed literal")
	}
}
