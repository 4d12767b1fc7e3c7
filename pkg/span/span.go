// Package span provides the input cursor and the primitive parser
// combinators the vimwiki grammar is built from.
//
// A Span is an immutable view over a shared source string. Parsers take a
// Span and return the advanced Span, so backtracking is a matter of
// keeping an earlier value around.
package span

import (
	"sort"
	"strings"
	"sync"

	"github.com/yaklabco/govimwiki/pkg/located"
)

// source is the shared backing text of every Span cut from it.
type source struct {
	text string

	linesOnce sync.Once
	lines     []int // start offset of each line
}

func (src *source) lineStarts() []int {
	src.linesOnce.Do(func() {
		starts := []int{0}
		for i := 0; i < len(src.text); i++ {
			if src.text[i] == '\n' {
				starts = append(starts, i+1)
			}
		}
		src.lines = starts
	})
	return src.lines
}

// position converts a byte offset into a 1-based line and column.
// Offsets past the end clamp to the end of the text.
func (src *source) position(offset int) located.Position {
	offset = min(max(offset, 0), len(src.text))
	starts := src.lineStarts()
	idx := sort.Search(len(starts), func(i int) bool {
		return starts[i] > offset
	}) - 1
	return located.Position{Line: idx + 1, Column: offset - starts[idx] + 1}
}

// Span is a window [start, end) over the source text together with the
// element nesting depth at which it is being parsed.
type Span struct {
	src   *source
	start int
	end   int
	depth int
}

// New creates a span covering all of text.
func New(text string) Span {
	return Span{src: &source{text: text}, end: len(text)}
}

// Offset returns the byte offset of the span's start within the source.
func (s Span) Offset() int { return s.start }

// EndOffset returns the byte offset one past the span's last byte.
func (s Span) EndOffset() int { return s.end }

// Depth returns the element nesting depth.
func (s Span) Depth() int { return s.depth }

// Len returns the number of bytes remaining in the span.
func (s Span) Len() int { return s.end - s.start }

// IsEmpty returns true if no bytes remain.
func (s Span) IsEmpty() bool { return s.start >= s.end }

// Source returns the entire backing text.
func (s Span) Source() string {
	if s.src == nil {
		return ""
	}
	return s.src.text
}

// Remaining returns the unconsumed text of the span.
func (s Span) Remaining() string {
	if s.src == nil {
		return ""
	}
	return s.src.text[s.start:s.end]
}

// String is an alias for Remaining so spans print naturally.
func (s Span) String() string { return s.Remaining() }

// Consumed returns the source text that precedes the span.
func (s Span) Consumed() string {
	if s.src == nil {
		return ""
	}
	return s.src.text[:s.start]
}

// First returns the next byte, if any.
func (s Span) First() (byte, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	return s.src.text[s.start], true
}

// HasPrefix reports whether the remaining text starts with prefix.
func (s Span) HasPrefix(prefix string) bool {
	return strings.HasPrefix(s.Remaining(), prefix)
}

// Advance returns the span with n bytes consumed. n is clamped to the
// remaining length.
func (s Span) Advance(n int) Span {
	s.start = min(s.start+max(n, 0), s.end)
	return s
}

// WithLength returns the span truncated to n bytes.
func (s Span) WithLength(n int) Span {
	s.end = min(s.start+max(n, 0), s.end)
	return s
}

// Until returns the portion of s that lies before rest. rest must have
// been derived from s.
func (s Span) Until(rest Span) Span {
	s.end = max(min(rest.start, s.end), s.start)
	return s
}

// Deeper returns the span one nesting level down.
func (s Span) Deeper() Span {
	s.depth++
	return s
}

// Shallower returns the span one nesting level up.
func (s Span) Shallower() Span {
	if s.depth > 0 {
		s.depth--
	}
	return s
}

// WithDepth returns the span at the given nesting depth.
func (s Span) WithDepth(depth int) Span {
	s.depth = depth
	return s
}

// Position returns the 1-based line and column of the span's start.
func (s Span) Position() located.Position {
	return s.PositionOf(s.start)
}

// PositionOf returns the 1-based line and column of an arbitrary source offset.
func (s Span) PositionOf(offset int) located.Position {
	if s.src == nil {
		return located.Position{Line: 1, Column: 1}
	}
	return s.src.position(offset)
}

// OffsetOf converts a 1-based line and column back into a byte offset.
// It returns false if line is out of range.
func (s Span) OffsetOf(pos located.Position) (int, bool) {
	if s.src == nil || pos.Line < 1 {
		return 0, false
	}
	starts := s.src.lineStarts()
	if pos.Line > len(starts) {
		return 0, false
	}
	lineStart := starts[pos.Line-1]
	lineEnd := len(s.src.text)
	if pos.Line < len(starts) {
		lineEnd = starts[pos.Line] - 1
	}
	return min(lineStart+max(pos.Column-1, 0), lineEnd), true
}

// LineCount returns the number of lines in the source.
func (s Span) LineCount() int {
	if s.src == nil {
		return 0
	}
	return len(s.src.lineStarts())
}

// AtLineStart reports whether the span begins at the start of a line.
func (s Span) AtLineStart() bool {
	return s.start == 0 || s.src.text[s.start-1] == '\n'
}

// Column returns the number of bytes between the start of the current
// line and the span's start.
func (s Span) Column() int {
	consumed := s.Consumed()
	return len(consumed) - (strings.LastIndexByte(consumed, '\n') + 1)
}

// AtLineEnd reports whether the span is at a line terminator or at the
// end of its input.
func (s Span) AtLineEnd() bool {
	rest := s.Remaining()
	return rest == "" || rest[0] == '\n' || strings.HasPrefix(rest, "\r\n")
}

// IsOnlyWhitespace reports whether the remaining text is all whitespace.
func (s Span) IsOnlyWhitespace() bool {
	return strings.TrimSpace(s.Remaining()) == ""
}
