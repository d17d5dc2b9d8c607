// Package sourcemap converts a source line/column into a byte offset, for
// locating a specific spot in a C fragment. Only the offset index survives
// from this module's teacher; its source-map-v3 (VLQ-encoded JS source map)
// generator had no role to play once there was no compiled-output-to-source
// mapping left to produce, and is not carried over (see DESIGN.md). The
// byte-offset-to-line/column direction (and its UTF-16 column variant) is
// likewise dropped: this module only ever needs to locate a line it already
// has the number of, never to classify an arbitrary byte offset.
package sourcemap

// LineIndex provides efficient line/column to byte offset conversion.
// It pre-computes line start positions for O(1) lookups.
type LineIndex struct {
	source     string
	lineStarts []int // byte offset of each line start
}

// NewLineIndex creates a LineIndex for the given source.
func NewLineIndex(source string) *LineIndex {
	idx := &LineIndex{
		source:     source,
		lineStarts: []int{0}, // First line starts at offset 0
	}

	// Scan for newlines
	for i := 0; i < len(source); i++ {
		c := source[i]
		if c == '\n' {
			// LF - next line starts after this (unless at end of source)
			nextLineStart := i + 1
			if nextLineStart < len(source) {
				idx.lineStarts = append(idx.lineStarts, nextLineStart)
			}
		} else if c == '\r' {
			// CR - check for CRLF
			if i+1 < len(source) && source[i+1] == '\n' {
				// CRLF - next line starts after both (unless at end)
				nextLineStart := i + 2
				if nextLineStart < len(source) {
					idx.lineStarts = append(idx.lineStarts, nextLineStart)
				}
				i++ // Skip the LF
			} else {
				// Standalone CR - next line starts after this (unless at end)
				nextLineStart := i + 1
				if nextLineStart < len(source) {
					idx.lineStarts = append(idx.lineStarts, nextLineStart)
				}
			}
		}
	}

	return idx
}

// LineCount returns the number of lines in the source.
func (idx *LineIndex) LineCount() int {
	return len(idx.lineStarts)
}

// LineColumnToByteOffset converts a 0-indexed line and column to byte offset.
// The column is expected in bytes.
func (idx *LineIndex) LineColumnToByteOffset(line, col int) int {
	if line < 0 {
		line = 0
	}
	if line >= len(idx.lineStarts) {
		line = len(idx.lineStarts) - 1
	}

	offset := idx.lineStarts[line] + col

	// Clamp to source bounds
	if offset < 0 {
		return 0
	}
	if offset > len(idx.source) {
		return len(idx.source)
	}

	return offset
}
