package vimwiki

import (
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/span"
)

type delimiter struct {
	open, close string
	decoration  elements.Decoration
}

// delimiters is ordered so compound styles are tried before their parts.
//
//nolint:gochecknoglobals // Fixed table.
var delimiters = []delimiter{
	{"_*", "*_", elements.DecorationBoldItalic},
	{"*_", "_*", elements.DecorationBoldItalic},
	{"*", "*", elements.DecorationBold},
	{"_", "_", elements.DecorationItalic},
	{"~~", "~~", elements.DecorationStrikeout},
	{"^", "^", elements.DecorationSuperscript},
	{",,", ",,", elements.DecorationSubscript},
}

// decoratedText parses styled text. The closing delimiter must be on the
// same line, and a body containing a comment start is rejected so the
// comment wins.
func decoratedText(s span.Span) (span.Span, elements.DecoratedText, error) {
	alts := make([]span.Parser[elements.DecoratedText], 0, len(delimiters))
	for _, d := range delimiters {
		alts = append(alts, decorated(d))
	}
	return span.Context("decorated text", span.Alt(alts...))(s)
}

func decorated(d delimiter) span.Parser[elements.DecoratedText] {
	body := span.NotContains("%%", span.SurroundInLine1(d.open, d.close))
	contents := span.Deeper(span.AllConsuming(span.Many1(decoratedContent)))
	return span.Map(span.MapParser(body, contents), func(es []inlineLE) elements.DecoratedText {
		return elements.DecoratedText{Decoration: d.decoration, Contents: es}
	})
}

// decoratedContent parses one element inside a decorated span.
func decoratedContent(s span.Span) (span.Span, inlineLE, error) {
	return span.Alt(
		locateInline(link),
		locateInline(wholeWord(keyword)),
		locateInline(decoratedText),
		locateInline(textUntil(startsDecoratedContent)),
	)(s)
}

func startsDecoratedContent(s span.Span) bool {
	b, _ := s.First()
	switch b {
	case '[', '{':
		return span.Matches(s, link)
	case '*', '_', '~', '^', ',':
		return span.Matches(s, decoratedText)
	}
	return startsWord(s)
}
