package api

import (
	"strings"
	"testing"

	"codeberg.org/saruga/ctypectx/internal/cast"
)

// typedef unsigned int u32;
// struct Particle { int position; int velocity; u32 lifetime; };
// struct Particle particles;
// int add(int a, int b);
func TestBuildTypeMap(t *testing.T) {
	alloc := cast.NewIDAllocator()
	particle := cast.NewStructOrUnion(alloc, cast.KindStruct, "Particle", []cast.Node{
		&cast.Decl{Name: "position", Type: cast.BasicType("int")},
		&cast.Decl{Name: "velocity", Type: cast.BasicType("int")},
		&cast.Decl{Name: "lifetime", Type: &cast.TypeDecl{Inner: &cast.IdentifierType{Names: []string{"u32"}}}},
	})

	unit := &cast.TranslationUnit{ExternalDecls: []cast.Node{
		&cast.Typedef{Name: "u32", Type: cast.BasicType("unsigned", "int")},
		&cast.Decl{Name: "particles", Type: &cast.TypeDecl{Inner: particle}},
		&cast.Decl{Name: "add", Type: &cast.FuncDecl{
			Return: cast.BasicType("int"),
			Args: &cast.ParamList{Params: []cast.Node{
				&cast.Decl{Name: "a", Type: cast.BasicType("int")},
				&cast.Decl{Name: "b", Type: cast.BasicType("int")},
			}},
		}},
	}}

	tm, err := BuildTypeMap(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := tm.VarTypes["particles"]; !ok {
		t.Fatal("expected particles variable type to be recorded")
	}

	s, ok := tm.NamedStructs["Particle"]
	if !ok {
		t.Fatal("expected Particle struct to be parsed as a side effect of visiting particles's type")
	}
	if s.Size != 12 {
		t.Errorf("expected Particle size 12, got %d", s.Size)
	}

	fn, ok := tm.Functions["add"]
	if !ok {
		t.Fatal("expected add function to be recorded")
	}
	if len(fn.Params) != 2 {
		t.Errorf("expected 2 params for add, got %d", len(fn.Params))
	}
}

func TestDumpRendersVariablesFunctionsAndStructs(t *testing.T) {
	alloc := cast.NewIDAllocator()
	point := cast.NewStructOrUnion(alloc, cast.KindStruct, "Point", []cast.Node{
		&cast.Decl{Name: "x", Type: cast.BasicType("int")},
		&cast.Decl{Name: "y", Type: cast.BasicType("int")},
	})

	unit := &cast.TranslationUnit{ExternalDecls: []cast.Node{
		&cast.Decl{Name: "origin", Type: &cast.TypeDecl{Inner: point}},
		&cast.Decl{Name: "distance", Type: &cast.FuncDecl{
			Return: cast.BasicType("int"),
			Args: &cast.ParamList{Params: []cast.Node{
				&cast.Decl{Name: "a", Type: &cast.TypeDecl{Inner: point}},
				&cast.Decl{Name: "b", Type: &cast.TypeDecl{Inner: point}},
			}},
		}},
	}}

	tm, err := BuildTypeMap(unit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sb strings.Builder
	if err := Dump(&sb, tm); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "origin: struct Point") {
		t.Errorf("expected origin's dumped type, got:\n%s", out)
	}
	if !strings.Contains(out, "distance: int(struct Point, struct Point)") {
		t.Errorf("expected distance's dumped signature, got:\n%s", out)
	}
	if !strings.Contains(out, "Point: size 8, align 4") {
		t.Errorf("expected Point's dumped layout, got:\n%s", out)
	}
	if !strings.Contains(out, "0: x (int)") || !strings.Contains(out, "4: y (int)") {
		t.Errorf("expected Point's dumped field offsets, got:\n%s", out)
	}
}

func TestTypeString(t *testing.T) {
	cases := []struct {
		name string
		t    cast.Type
		want string
	}{
		{"primitive", cast.BasicType("unsigned", "int"), "unsigned int"},
		{"pointer", cast.Pointer(cast.BasicType("int")), "int *"},
		{"array", &cast.ArrayDecl{Inner: cast.BasicType("char"), Dim: &cast.IntLiteral{Value: "4"}}, "char [4]"},
	}
	for _, c := range cases {
		if got := TypeString(c.t); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}
