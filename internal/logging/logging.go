// Package logging provides the structured logger cmd/ctypectx and its
// library callers use: a thin, opinionated wrapper around log/slog rather
// than a bespoke logging type.
package logging

import (
	"context"
	"io"
	"log/slog"
)

// Logger returns a text-handler logger writing to out at the given level.
func Logger(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(textHandler(out, level))
}

func textHandler(out io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})
}

// DiscardLogger returns a logger that discards all output, for library
// callers that never configured one.
func DiscardLogger() *slog.Logger {
	return slog.New(DiscardHandler())
}

// DiscardHandler returns a slog.Handler that discards all output.
func DiscardHandler() slog.Handler {
	return (*discardHandler)(nil)
}

type discardHandler struct {
	slog.Handler
}

func (*discardHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}
