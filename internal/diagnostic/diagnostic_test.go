package diagnostic

import (
	"strings"
	"testing"

	"codeberg.org/saruga/ctypectx/internal/cast"
)

func TestFailureError(t *testing.T) {
	f := New("something went wrong")
	if f.Error() != "something went wrong" {
		t.Errorf("got %q", f.Error())
	}
}

func TestNewfFormats(t *testing.T) {
	f := Newf("bad field %s", "x")
	if f.Error() != "bad field x" {
		t.Errorf("got %q", f.Error())
	}
}

func TestAtAttachesNode(t *testing.T) {
	node := &cast.Decl{Name: "x"}
	f := New("bad").At(node)
	if f.Node != node {
		t.Error("expected At to attach the node")
	}
}

func TestFormatSyntaxError(t *testing.T) {
	msg := FormatSyntaxError("unexpected token }", 3, 5, "int x = }")
	if !strings.Contains(msg, "at line 3, column 5") {
		t.Errorf("expected position in message, got %q", msg)
	}
	if !strings.Contains(msg, "int x = }") {
		t.Errorf("expected source line in message, got %q", msg)
	}
}

func TestFormatSyntaxErrorNoColumn(t *testing.T) {
	msg := FormatSyntaxError("unexpected EOF", 7, 0, "")
	if strings.Contains(msg, "column") {
		t.Errorf("expected no column clause, got %q", msg)
	}
	if !strings.Contains(msg, "at line 7") {
		t.Errorf("expected line in message, got %q", msg)
	}
}
