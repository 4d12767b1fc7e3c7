package vimwiki

import (
	"strings"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/span"
)

const maxHeaderLevel = 6

// header parses "== Title ==". Leading whitespace centers the header.
func header(s span.Span) (span.Span, elements.Header, error) {
	rest, _, err := span.BeginningOfLine(s)
	if err != nil {
		return s, elements.Header{}, err
	}

	rest, lead, _ := span.Space0(rest)

	rest, marks, err := span.TakeLineWhile1(span.Char('='))(rest)
	if err != nil {
		return s, elements.Header{}, err
	}
	level := marks.Len()
	if level > maxHeaderLevel {
		return s, elements.Header{}, span.Fail(s, "header level 1 to 6")
	}

	rest, line, _ := span.TakeUntilEndOfLineOrInput(rest)
	raw := strings.TrimRight(line.Remaining(), " \t")
	closing := strings.Repeat("=", level)
	if !strings.HasSuffix(raw, closing) || strings.HasSuffix(raw, closing+"=") {
		return s, elements.Header{}, span.Fail(rest, "'"+closing+"'")
	}

	body := trimmed(line.WithLength(len(raw) - level))
	_, content, err := span.AllConsuming(inlineElementContainer)(body)
	if err != nil {
		return s, elements.Header{}, err
	}

	rest, _, err = span.EndOfLineOrInput(rest)
	if err != nil {
		return s, elements.Header{}, err
	}

	return rest, elements.Header{
		Level:    level,
		Content:  content,
		Centered: !lead.IsEmpty(),
	}, nil
}
