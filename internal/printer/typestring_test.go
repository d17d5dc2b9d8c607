package printer

import (
	"bytes"
	"strings"
	"testing"

	"codeberg.org/saruga/ctypectx/internal/cast"
	"codeberg.org/saruga/ctypectx/internal/ctypes"
)

func TestTypeStringPrimitive(t *testing.T) {
	if got := TypeString(cast.BasicType("unsigned", "long")); got != "unsigned long" {
		t.Errorf("got %q", got)
	}
}

func TestTypeStringPointer(t *testing.T) {
	if got := TypeString(cast.Pointer(cast.BasicType("int"))); got != "int *" {
		t.Errorf("got %q", got)
	}
}

func TestTypeStringArrayOfPointers(t *testing.T) {
	// int *arr[4] -- an array of 4 pointers to int.
	ty := &cast.ArrayDecl{
		Inner: cast.Pointer(cast.BasicType("int")),
		Dim:   &cast.IntLiteral{Value: "4"},
	}
	if got := TypeString(ty); got != "int *[4]" {
		t.Errorf("got %q", got)
	}
}

func TestTypeStringPointerToArray(t *testing.T) {
	// int (*p)[4] -- a pointer to an array of 4 ints.
	ty := cast.Pointer(&cast.ArrayDecl{
		Inner: cast.BasicType("int"),
		Dim:   &cast.IntLiteral{Value: "4"},
	})
	if got := TypeString(ty); got != "int (*)[4]" {
		t.Errorf("got %q", got)
	}
}

func TestTypeStringNamedStructByTag(t *testing.T) {
	alloc := cast.NewIDAllocator()
	s := cast.NewStructOrUnion(alloc, cast.KindStruct, "Point", []cast.Node{})
	if got := TypeString(&cast.TypeDecl{Inner: s}); got != "struct Point" {
		t.Errorf("got %q", got)
	}
}

func TestTypeStringAnonymousStruct(t *testing.T) {
	alloc := cast.NewIDAllocator()
	s := cast.NewStructOrUnion(alloc, cast.KindStruct, "", []cast.Node{})
	if got := TypeString(&cast.TypeDecl{Inner: s}); got != "anon struct" {
		t.Errorf("got %q", got)
	}
}

func TestFunctionStringUnknownArity(t *testing.T) {
	fn := &ctypes.Function{RetType: cast.BasicType("int")}
	if got := FunctionString("f", fn); got != "f: int()" {
		t.Errorf("got %q", got)
	}
}

func TestFunctionStringExplicitVoid(t *testing.T) {
	fn := &ctypes.Function{Params: []ctypes.Param{}}
	if got := FunctionString("f", fn); got != "f: void(void)" {
		t.Errorf("got %q", got)
	}
}

func TestFunctionStringVariadic(t *testing.T) {
	fn := &ctypes.Function{
		RetType:  cast.BasicType("int"),
		Params:   []ctypes.Param{{Type: cast.BasicType("int")}},
		Variadic: true,
	}
	if got := FunctionString("printf_like", fn); got != "printf_like: int(int, ...)" {
		t.Errorf("got %q", got)
	}
}

func TestDumpTypeMapSortsByName(t *testing.T) {
	tm := ctypes.NewTypeMap()
	tm.VarTypes["zebra"] = cast.BasicType("int")
	tm.VarTypes["alpha"] = cast.BasicType("char")

	var buf bytes.Buffer
	if err := DumpTypeMap(&buf, tm); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Index(out, "alpha") > strings.Index(out, "zebra") {
		t.Errorf("expected alpha before zebra in sorted output, got:\n%s", out)
	}
}
