package vimwiki

import (
	"strings"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/span"
)

const blockquoteIndent = 4

// blockquote parses either "> " prefixed lines or lines indented by four
// or more spaces.
func blockquote(s span.Span) (span.Span, elements.Blockquote, error) {
	return span.Alt(arrowBlockquote, indentedBlockquote)(s)
}

func arrowLine(s span.Span) (span.Span, string, error) {
	rest, _, err := span.Preceded(span.BeginningOfLine, span.Preceded(span.Space0, span.Char('>')))(s)
	if err != nil {
		return s, "", err
	}
	switch {
	case rest.HasPrefix(" "):
		rest = rest.Advance(1)
	case !rest.AtLineEnd():
		return s, "", span.Fail(rest, "' '")
	}
	rest, line, _ := span.TakeUntilEndOfLineOrInput(rest)
	rest, _, _ = span.EndOfLineOrInput(rest)
	return rest, line.Remaining(), nil
}

// arrowBlockquote parses "> " lines. Blank lines between them are kept as
// empty lines; trailing blank lines are left for the caller.
func arrowBlockquote(s span.Span) (span.Span, elements.Blockquote, error) {
	rest, first, err := arrowLine(s)
	if err != nil {
		return s, elements.Blockquote{}, err
	}
	lines := []string{first}

	for !rest.IsEmpty() {
		next, blanks, _ := span.Many0(span.BlankLine)(rest)
		next, line, ok := span.Try(next, arrowLine)
		if !ok {
			break
		}
		for range blanks {
			lines = append(lines, "")
		}
		lines = append(lines, line)
		rest = next
	}

	return rest, elements.Blockquote{Lines: lines}, nil
}

func indentedLine(s span.Span) (span.Span, string, error) {
	rest, _, err := span.BeginningOfLine(s)
	if err != nil {
		return s, "", err
	}
	rest, lead, _ := span.TakeWhile(func(b byte) bool { return b == ' ' })(rest)
	if lead.Len() < blockquoteIndent {
		return s, "", span.Fail(rest, "four spaces of indentation")
	}
	rest, line, err := restOfLine(rest)
	if err != nil {
		return s, "", err
	}
	rest, _, err = span.EndOfLineOrInput(rest)
	if err != nil {
		return s, "", err
	}
	return rest, strings.TrimSpace(line.Remaining()), nil
}

func indentedBlockquote(s span.Span) (span.Span, elements.Blockquote, error) {
	return span.Map(span.Many1(indentedLine), func(lines []string) elements.Blockquote {
		return elements.Blockquote{Lines: lines}
	})(s)
}
