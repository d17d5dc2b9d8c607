// Package diagnostic provides the single structured error kind this module
// raises, the DecompFailure-equivalent described by the spec: a message plus
// an optional AST node reference. Source-position rendering for a real
// parser's syntax errors is also provided, since downstream callers (the
// CLI in cmd/ctypectx) need it even though the core layout/normalize/
// signature logic never produces position information itself.
package diagnostic

import (
	"fmt"

	"codeberg.org/saruga/ctypectx/internal/cast"
)

// Failure is raised for every user-visible error this module can produce:
// unparseable input handed upstream, use of an incomplete struct, an array
// field without a declared size, an over-complex constant expression, a
// malformed bitfield, or a K&R-style function header. It deliberately
// carries no stack trace or severity: the core aborts the entire build on
// the first Failure, there is no continue-on-error mode.
type Failure struct {
	Message string
	Node    cast.Node // optional; nil when no specific AST node caused this
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return f.Message
}

// New creates a Failure with no associated node.
func New(message string) *Failure {
	return &Failure{Message: message}
}

// Newf creates a Failure from a format string, with no associated node.
func Newf(format string, args ...any) *Failure {
	return &Failure{Message: fmt.Sprintf(format, args...)}
}

// At attaches an AST node to an existing Failure and returns it, for callers
// that want to report where in the tree things went wrong.
func (f *Failure) At(node cast.Node) *Failure {
	f.Node = node
	return f
}

// FormatSyntaxError reproduces the upstream parser error template this
// module's predecessor used: a message, a 1-based line (and optional
// column), and the offending source line. parserMsg is whatever the
// injected parser reported; line has already been corrected by
// cprep.AdjustLine to account for the prepended builtin-typedef line.
func FormatSyntaxError(parserMsg string, line int, column int, sourceLine string) string {
	pos := fmt.Sprintf(" at line %d", line)
	if column > 0 {
		pos += fmt.Sprintf(", column %d", column)
	}
	msg := fmt.Sprintf("Syntax error when parsing C context.\n%s%s", parserMsg, pos)
	if sourceLine != "" {
		msg += "\n\n" + sourceLine
	}
	return msg
}
