// Package cprep implements Component H, the textual preprocessing step that
// runs before a C fragment reaches the parser: stripping comments, splicing
// in the fixed-width built-in typedefs a decompiler's own output relies on,
// and adjusting the line numbers a downstream parser reports so they point
// back at the caller's original, un-prefixed source.
package cprep

import (
	"regexp"
	"strings"

	"codeberg.org/saruga/ctypectx/internal/sourcemap"
)

// builtinTypedefs are the fixed-width aliases a decompiler's generated C
// commonly assumes exist (u8/s8/u16/s16/u32/s32/u64/s64/f32/f64) but are
// never declared by the fragment itself.
var builtinTypedefs = []struct {
	name string
	spec string
}{
	{"u8", "unsigned char"},
	{"s8", "char"},
	{"u16", "unsigned short"},
	{"s16", "short"},
	{"u32", "unsigned int"},
	{"s32", "int"},
	{"u64", "unsigned long long"},
	{"s64", "long long"},
	{"f32", "float"},
	{"f64", "double"},
}

// AddBuiltinTypedefs prepends one line of typedef declarations for the
// fixed-width built-in aliases, ahead of source. The line it adds is always
// exactly one line, which is what AdjustLine corrects for.
func AddBuiltinTypedefs(source string) string {
	var b strings.Builder
	for i, td := range builtinTypedefs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("typedef ")
		b.WriteString(td.spec)
		b.WriteByte(' ')
		b.WriteString(td.name)
		b.WriteByte(';')
	}
	b.WriteByte('\n')
	b.WriteString(source)
	return b.String()
}

// BuiltinTypedefLines is the number of lines AddBuiltinTypedefs inserts
// ahead of the caller's source; AdjustLine subtracts this many from a
// reported line number.
const BuiltinTypedefLines = 1

// AdjustLine corrects a 1-indexed line number reported by a parser that ran
// against AddBuiltinTypedefs's output, translating it back to a line number
// in the caller's original source.
func AdjustLine(reportedLine int) int {
	return reportedLine - BuiltinTypedefLines
}

// commentOrLiteral matches a line comment, a block comment, a character
// literal, or a string literal: the four things that must be scanned
// together so that a comment marker inside a string is never mistaken for
// the start of a real comment.
var commentOrLiteral = regexp.MustCompile(`(?m://.*$)|(?s:/\*.*?\*/)|'(?:\\.|[^\\'])*'|"(?:\\.|[^\\"])*"`)

// StripComments blanks out // and /* */ comments while preserving line
// count (so that line numbers reported against the result still line up
// with text), and leaves character and string literals untouched.
func StripComments(text string) string {
	return commentOrLiteral.ReplaceAllStringFunc(text, func(match string) string {
		if strings.HasPrefix(match, "/") {
			return " " + strings.Repeat("\n", strings.Count(match, "\n"))
		}
		return match
	})
}

// SourceLine returns the 0-indexed line'th line of source, with its
// trailing newline stripped, for embedding in a syntax-error message
// alongside diagnostic.FormatSyntaxError. Returns "" if line is out of
// range.
func SourceLine(source string, line int) string {
	idx := sourcemap.NewLineIndex(source)
	if line < 0 || line >= idx.LineCount() {
		return ""
	}
	start := idx.LineColumnToByteOffset(line, 0)
	end := len(source)
	if line+1 < idx.LineCount() {
		end = idx.LineColumnToByteOffset(line+1, 0)
	}
	return strings.TrimRight(source[start:end], "\r\n")
}
