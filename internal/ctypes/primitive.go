package ctypes

import (
	"codeberg.org/saruga/ctypectx/internal/cast"
)

// PrimitiveSize maps an identifier-type name list or an enum to its byte
// size under this module's fixed 32-bit ABI (pointers 4B, long long/double
// 8B, long alone 4B, short 2B, char 1B, enum 4B, everything else 4B).
// Alignment equals size for every primitive. Rules are checked in priority
// order; the first match wins.
func PrimitiveSize(spec cast.TypeSpec) int {
	if _, ok := spec.(*cast.Enum); ok {
		return 4
	}
	ident, ok := spec.(*cast.IdentifierType)
	if !ok {
		return 4
	}
	names := ident.Names
	if containsName(names, "double") {
		return 8
	}
	if containsName(names, "float") {
		return 4
	}
	if containsName(names, "short") {
		return 2
	}
	if containsName(names, "char") {
		return 1
	}
	if countName(names, "long") == 2 {
		return 8
	}
	return 4
}

func containsName(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}

func countName(names []string, target string) int {
	count := 0
	for _, n := range names {
		if n == target {
			count++
		}
	}
	return count
}
