package vimwiki

import (
	"strings"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/span"
)

// comment parses a multi-line "%%+ ... +%%" comment or a "%%" comment
// running to the end of the line.
func comment(s span.Span) (span.Span, elements.Comment, error) {
	return span.Alt(multiLineComment, lineComment)(s)
}

func multiLineComment(s span.Span) (span.Span, elements.Comment, error) {
	rest, _, err := span.Tag("%%+")(s)
	if err != nil {
		return s, elements.Comment{}, err
	}
	end := strings.Index(rest.Remaining(), "+%%")
	if end < 0 {
		return s, elements.Comment{}, span.Fail(rest, "'+%%'")
	}
	body := rest.WithLength(end).Remaining()
	return rest.Advance(end + len("+%%")), elements.Comment{
		MultiLine: true,
		Lines:     splitLines(body),
	}, nil
}

func lineComment(s span.Span) (span.Span, elements.Comment, error) {
	rest, _, err := span.Tag("%%")(s)
	if err != nil {
		return s, elements.Comment{}, err
	}
	rest, body, _ := span.TakeUntilEndOfLineOrInput(rest)
	return rest, elements.Comment{Lines: []string{body.Remaining()}}, nil
}

// commentBlock parses a comment that is alone on its line or lines.
func commentBlock(s span.Span) (span.Span, elements.Comment, error) {
	return span.Delimited(
		span.Preceded(span.BeginningOfLine, span.Space0),
		comment,
		span.Preceded(span.Space0, span.EndOfLineOrInput),
	)(s)
}
