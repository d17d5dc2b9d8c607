// Package api provides the public API for the type-context analyzer.
//
// This package is intended for programmatic use: a caller with its own C
// parser decodes source into a *cast.TranslationUnit and hands it to
// BuildTypeMap. For text-driven use without writing Go, see cmd/ctypectx,
// which additionally knows how to decode the JSON AST encoding documented
// in internal/astjson.
package api

import (
	"io"

	"codeberg.org/saruga/ctypectx/internal/cast"
	"codeberg.org/saruga/ctypectx/internal/ctypes"
	"codeberg.org/saruga/ctypectx/internal/printer"
	"codeberg.org/saruga/ctypectx/internal/typemap"
)

// TypeMap re-exports internal/ctypes.TypeMap so that callers never need to
// import the internal package directly to hold a reference to one.
type TypeMap = ctypes.TypeMap

// BuildTypeMap runs the type-map builder (Component F) over unit, computing
// every struct/union layout and function signature it reaches.
func BuildTypeMap(unit *cast.TranslationUnit) (*TypeMap, error) {
	return typemap.Build(unit)
}

// Dump writes tm's human-readable rendering to w: variables, then
// functions, then named structs with field offset tables.
func Dump(w io.Writer, tm *TypeMap) error {
	return printer.DumpTypeMap(w, tm)
}

// TypeString renders a single type the same way Dump renders one field or
// variable's type.
func TypeString(t cast.Type) string {
	return printer.TypeString(t)
}
