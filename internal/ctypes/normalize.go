package ctypes

import "codeberg.org/saruga/ctypectx/internal/cast"

// maxTypedefChainLength bounds ResolveTypedefs's loop. The spec assumes the
// input AST is acyclic; this is the defensive backstop the design notes
// call for, sized to the number of typedefs actually known so a genuine
// cycle can never masquerade as a long but legitimate chain.
func maxTypedefChainLength(tm *TypeMap) int {
	return len(tm.Typedefs) + 1
}

// ResolveTypedefs replaces t with its typedef definition while t is a
// *TypeDecl wrapping a single-name IdentifierType whose sole name is a
// typedef. It stops at the first non-typedef shape and is idempotent on
// non-typedef types. It does not collapse across pointers or arrays: a
// pointer to a typedef is left alone.
func ResolveTypedefs(t cast.Type, tm *TypeMap) cast.Type {
	limit := maxTypedefChainLength(tm)
	for i := 0; i < limit; i++ {
		td, ok := t.(*cast.TypeDecl)
		if !ok {
			return t
		}
		ident, ok := td.Inner.(*cast.IdentifierType)
		if !ok || len(ident.Names) != 1 {
			return t
		}
		next, ok := tm.Typedefs[ident.Names[0]]
		if !ok {
			return t
		}
		t = next
	}
	return t
}

// PointerDecay resolves typedefs, then decays arrays and functions to
// pointers and canonicalizes enums to int, guaranteeing the result is a
// SimpleType (PtrDecl | TypeDecl).
func PointerDecay(t cast.Type, tm *TypeMap) cast.Type {
	real := ResolveTypedefs(t, tm)
	switch r := real.(type) {
	case *cast.ArrayDecl:
		return &cast.PtrDecl{Inner: r.Inner}
	case *cast.FuncDecl:
		// Preserve the original (pre-resolution) spelling of the function
		// type, not the resolved one, so diagnostics keep the named
		// function-type spelling.
		return &cast.PtrDecl{Inner: t}
	case *cast.TypeDecl:
		if _, ok := r.Inner.(*cast.Enum); ok {
			return cast.BasicType("int")
		}
	}
	return t
}

// DerefType resolves typedefs, requires a PtrDecl or ArrayDecl, and returns
// its inner type. Any other shape is a programmer error: it means the
// caller asked to dereference something that was never a pointer or array,
// which can't happen for a well-typed AST in this decompilation context.
func DerefType(t cast.Type, tm *TypeMap) cast.Type {
	real := ResolveTypedefs(t, tm)
	switch r := real.(type) {
	case *cast.PtrDecl:
		return r.Inner
	case *cast.ArrayDecl:
		return r.Inner
	default:
		panic("dereferencing non-pointer")
	}
}

// IsVoid reports whether t is exactly `void`.
func IsVoid(t cast.Type) bool {
	td, ok := t.(*cast.TypeDecl)
	if !ok {
		return false
	}
	ident, ok := td.Inner.(*cast.IdentifierType)
	if !ok || len(ident.Names) != 1 {
		return false
	}
	return ident.Names[0] == "void"
}

// IsStructType resolves typedefs then reports whether t is a struct or
// union type.
func IsStructType(t cast.Type, tm *TypeMap) bool {
	real := ResolveTypedefs(t, tm)
	td, ok := real.(*cast.TypeDecl)
	if !ok {
		return false
	}
	_, ok = td.Inner.(*cast.StructOrUnion)
	return ok
}

// GetPrimitiveList resolves typedefs and returns the identifier name list
// of a primitive type ([]string{"int"} for an enum). ok is false for any
// non-primitive shape (pointer, array, function, struct/union).
func GetPrimitiveList(t cast.Type, tm *TypeMap) (names []string, ok bool) {
	real := ResolveTypedefs(t, tm)
	td, isDecl := real.(*cast.TypeDecl)
	if !isDecl {
		return nil, false
	}
	switch inner := td.Inner.(type) {
	case *cast.Enum:
		return []string{"int"}, true
	case *cast.IdentifierType:
		return inner.Names, true
	default:
		return nil, false
	}
}
