package vimwiki

import (
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/span"
)

// inlineElementContainer parses one or more inline elements.
func inlineElementContainer(s span.Span) (span.Span, elements.InlineElementContainer, error) {
	return span.Map(span.Many1(inlineElement), func(es []inlineLE) elements.InlineElementContainer {
		return elements.InlineElementContainer{Elements: es}
	})(s)
}

// inlineElement parses the next inline element. Text is the fallback and
// stops wherever one of the other alternatives would match.
func inlineElement(s span.Span) (span.Span, inlineLE, error) {
	return span.Alt(
		locateInline(comment),
		locateInline(mathInline),
		locateInline(codeInline),
		locateInline(tags),
		locateInline(link),
		locateInline(decoratedText),
		locateInline(wholeWord(keyword)),
		locateInline(text),
	)(s)
}

// text consumes plain text up to the next line end or the next offset
// where another inline element begins.
func text(s span.Span) (span.Span, elements.Text, error) {
	return textUntil(startsInlineElement)(s)
}

func textUntil(stop func(span.Span) bool) span.Parser[elements.Text] {
	return func(s span.Span) (span.Span, elements.Text, error) {
		cur := s
		for !cur.AtLineEnd() {
			if cur.Offset() > s.Offset() && stop(cur) {
				break
			}
			cur, _, _ = span.AnyChar(cur)
		}
		if cur.Offset() == s.Offset() {
			return s, "", span.Fail(s, "text")
		}
		return cur, elements.Text(s.Until(cur).Remaining()), nil
	}
}

func startsInlineElement(s span.Span) bool {
	b, _ := s.First()
	switch b {
	case '%':
		return span.Matches(s, comment)
	case '`':
		return span.Matches(s, codeInline)
	case '$':
		return span.Matches(s, mathInline)
	case ':':
		return span.Matches(s, tags)
	case '[', '{':
		return span.Matches(s, link)
	case '*', '_', '~', '^', ',':
		return span.Matches(s, decoratedText)
	}
	return startsWord(s)
}

// startsWord reports whether a keyword or raw link begins at s.
func startsWord(s span.Span) bool {
	if !precededByWhitespace(s) {
		return false
	}
	b, _ := s.First()
	switch {
	case b == 'D' || b == 'F' || b == 'S' || b == 'T' || b == 'X':
		if span.Matches(s, wholeWord(keyword)) {
			return true
		}
	case b < 'a' || b > 'z':
		return false
	}
	return span.Matches(s, rawLink)
}

// keyword parses one of the action words. It does not look past the word;
// callers wrap it in wholeWord.
func keyword(s span.Span) (span.Span, elements.Keyword, error) {
	alts := make([]span.Parser[elements.Keyword], 0, len(elements.Keywords))
	for _, kw := range elements.Keywords {
		alts = append(alts, span.Value(kw, span.Tag(string(kw))))
	}
	return span.Context("keyword", span.Alt(alts...))(s)
}

// codeInline parses "`code`".
func codeInline(s span.Span) (span.Span, elements.CodeInline, error) {
	return span.Map(span.SurroundInLine1("`", "`"), func(c span.Span) elements.CodeInline {
		return elements.CodeInline{Code: c.Remaining()}
	})(s)
}

// mathInline parses "$formula$".
func mathInline(s span.Span) (span.Span, elements.MathInline, error) {
	return span.Map(
		span.Delimited(
			span.Char('$'),
			span.NotContains("%%", span.TakeLineUntil1("$")),
			span.Char('$'),
		),
		func(f span.Span) elements.MathInline {
			return elements.MathInline{Formula: f.Remaining()}
		},
	)(s)
}

func isTagChar(s span.Span) (span.Span, span.Unit, error) {
	return span.Not(span.OneOf(": \t"))(s)
}

// tags parses ":tag-one:tag-two:".
func tags(s span.Span) (span.Span, elements.Tags, error) {
	name := span.Map(span.TakeLineWhile1(isTagChar), spanText)
	return span.Map(
		span.Preceded(span.Char(':'), span.Many1(span.Terminated(name, span.Char(':')))),
		func(names []string) elements.Tags { return elements.Tags{Names: names} },
	)(s)
}
