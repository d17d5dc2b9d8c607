// Package cxtest provides shared test helpers for this module's packages:
// structured equality assertions built on testify, and character-level
// diffs of expected-vs-actual type map dumps built on go-diff.
package cxtest

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Equal asserts actual == expected, failing the test but letting it
// continue (use RequireEqual to abort immediately instead).
func Equal(t assert.TestingT, expected, actual any, msgAndArgs ...any) bool {
	return assert.Equal(t, expected, actual, msgAndArgs...)
}

// RequireEqual asserts actual == expected, aborting the test immediately on
// mismatch.
func RequireEqual(t require.TestingT, expected, actual any, msgAndArgs ...any) {
	require.Equal(t, expected, actual, msgAndArgs...)
}

// NoError asserts err == nil, aborting the test immediately otherwise.
func NoError(t require.TestingT, err error, msgAndArgs ...any) {
	require.NoError(t, err, msgAndArgs...)
}

// AssertDump asserts that two multi-line type map dumps are identical,
// rendering an inline character-level diff on mismatch (inserted text
// prefixed with +, deleted text with -) instead of printing both strings in
// full.
func AssertDump(t assert.TestingT, expected, actual string) bool {
	if expected == actual {
		return true
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, actual, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	failer, ok := t.(interface {
		Errorf(format string, args ...any)
	})
	if ok {
		failer.Errorf("dump mismatch:\n%s", formatDiffs(diffs))
	}
	return false
}

func formatDiffs(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&b, "+%s", d.Text)
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&b, "-%s", d.Text)
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
