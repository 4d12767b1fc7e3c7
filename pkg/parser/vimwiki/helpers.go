package vimwiki

import (
	"strings"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/located"
	"github.com/yaklabco/govimwiki/pkg/span"
)

type (
	inlineLE = located.Located[elements.InlineElement]
	blockLE  = located.Located[elements.BlockElement]
)

// locateInline wraps p so its value is located and upcast to an inline element.
func locateInline[T elements.InlineElement](p span.Parser[T]) span.Parser[inlineLE] {
	return span.Map(span.Locate(p), located.Upcast[T, elements.InlineElement])
}

// locateBlock wraps p so its value is located and upcast to a block element.
func locateBlock[T elements.BlockElement](p span.Parser[T]) span.Parser[blockLE] {
	return span.Map(span.Locate(p), located.Upcast[T, elements.BlockElement])
}

// trimmed returns s without surrounding spaces and tabs.
func trimmed(s span.Span) span.Span {
	s, _, _ = span.Space0(s)
	return s.WithLength(len(strings.TrimRight(s.Remaining(), " \t")))
}

// indentation returns the width of the leading whitespace of the line s
// starts on, without consuming it.
func indentation(s span.Span) int {
	_, ws, _ := span.Space0(s)
	return ws.Len()
}

// precededByWhitespace reports whether s starts a word: it is at the
// start of the input or a line, or follows a space or tab.
func precededByWhitespace(s span.Span) bool {
	consumed := s.Consumed()
	if consumed == "" {
		return true
	}
	switch consumed[len(consumed)-1] {
	case ' ', '\t', '\n':
		return true
	default:
		return false
	}
}

// wordBoundary succeeds without consuming input at whitespace, a line end
// or the end of input.
func wordBoundary(s span.Span) (span.Span, span.Unit, error) {
	if s.AtLineEnd() {
		return s, span.Unit{}, nil
	}
	if b, _ := s.First(); b == ' ' || b == '\t' {
		return s, span.Unit{}, nil
	}
	return s, span.Unit{}, span.Fail(s, "word boundary")
}

// wholeWord runs p and then requires a word boundary after it.
func wholeWord[T any](p span.Parser[T]) span.Parser[T] {
	return span.Terminated(p, wordBoundary)
}

// restOfLine takes the remainder of the line with surrounding whitespace
// removed, requiring it to be non-empty.
func restOfLine(s span.Span) (span.Span, span.Span, error) {
	rest, line, _ := span.TakeUntilEndOfLineOrInput(s)
	line = trimmed(line)
	if line.IsEmpty() {
		return s, line, span.Fail(s, "text")
	}
	return rest, line, nil
}

func spanText(s span.Span) string { return s.Remaining() }

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
