package vimwiki

import (
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/located"
	"github.com/yaklabco/govimwiki/pkg/span"
)

// definitionList parses "term:: definition" entries. A term may instead
// be followed by lines of ":: definition".
func definitionList(s span.Span) (span.Span, elements.DefinitionList, error) {
	return span.Map(span.Many1(termAndDefinitions), func(items []elements.TermAndDefinitions) elements.DefinitionList {
		return elements.DefinitionList{Items: items}
	})(s)
}

func notDefinitionMarker(s span.Span) (span.Span, span.Unit, error) {
	return span.Not(span.Tag("::"))(s)
}

// inlineIn parses the whole of s as inline content.
func inlineIn(s span.Span) (span.Span, elements.InlineElementContainer, error) {
	return span.AllConsuming(inlineElementContainer)(trimmed(s))
}

func termAndDefinitions(s span.Span) (span.Span, elements.TermAndDefinitions, error) {
	var zero elements.TermAndDefinitions

	rest, _, err := span.BeginningOfLine(s)
	if err != nil {
		return s, zero, err
	}

	term := span.Map(span.MapParser(span.TakeLineWhile1(notDefinitionMarker), inlineIn), func(c elements.InlineElementContainer) elements.Term {
		return elements.Term{Content: c}
	})
	rest, t, err := span.Locate(term)(rest)
	if err != nil {
		return s, zero, err
	}

	rest, _, err = span.Tag("::")(rest)
	if err != nil {
		return s, zero, err
	}

	item := elements.TermAndDefinitions{Term: t}

	if next, def, ok := span.Try(rest, span.Preceded(span.Space1, span.Locate(definitionText))); ok {
		item.Definitions = append(item.Definitions, def)
		rest = next
	}

	rest, _, err = span.Preceded(span.Space0, span.EndOfLineOrInput)(rest)
	if err != nil {
		return s, zero, err
	}

	rest, more, err := span.Many0(definitionLine)(rest)
	if err != nil {
		return s, zero, err
	}
	item.Definitions = append(item.Definitions, more...)

	if len(item.Definitions) == 0 {
		return s, zero, span.Fail(rest, "definition")
	}
	return rest, item, nil
}

// definitionText parses the rest of the line as a definition.
func definitionText(s span.Span) (span.Span, elements.Definition, error) {
	return span.Map(span.MapParser(restOfLine, inlineIn), func(c elements.InlineElementContainer) elements.Definition {
		return elements.Definition{Content: c}
	})(s)
}

// definitionLine parses ":: definition" on its own line.
func definitionLine(s span.Span) (span.Span, located.Located[elements.Definition], error) {
	return span.Terminated(
		span.Preceded(
			span.Preceded(span.BeginningOfLine, span.Tag("::")),
			span.Preceded(span.Space1, span.Locate(definitionText)),
		),
		span.EndOfLineOrInput,
	)(s)
}
