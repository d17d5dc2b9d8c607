package ctypes

import (
	"testing"

	"codeberg.org/saruga/ctypectx/internal/cast"
)

func TestPrimitiveSize(t *testing.T) {
	cases := []struct {
		names []string
		want  int
	}{
		{[]string{"char"}, 1},
		{[]string{"signed", "char"}, 1},
		{[]string{"short"}, 2},
		{[]string{"short", "int"}, 2},
		{[]string{"int"}, 4},
		{[]string{"unsigned", "int"}, 4},
		{[]string{"long"}, 4},
		{[]string{"long", "long"}, 8},
		{[]string{"unsigned", "long", "long"}, 8},
		{[]string{"float"}, 4},
		{[]string{"double"}, 8},
	}
	for _, c := range cases {
		got := PrimitiveSize(&cast.IdentifierType{Names: c.names})
		if got != c.want {
			t.Errorf("%v: got %d, want %d", c.names, got, c.want)
		}
	}
}

func TestPrimitiveSizeEnum(t *testing.T) {
	got := PrimitiveSize(&cast.Enum{Name: "E"})
	if got != 4 {
		t.Errorf("got %d, want 4", got)
	}
}
