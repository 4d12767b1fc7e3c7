package vimwiki

import (
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/span"
)

// blockElement parses the next top-level element. Paragraph is tried last
// and refuses any line another block would claim.
func blockElement(s span.Span) (span.Span, blockLE, error) {
	return span.Alt(
		locateBlock(span.Context("header", header)),
		locateBlock(span.Context("definition list", definitionList)),
		locateBlock(span.Context("list", list)),
		locateBlock(span.Context("table", table)),
		locateBlock(span.Context("code block", codeBlock)),
		locateBlock(span.Context("math block", mathBlock)),
		locateBlock(span.Context("blockquote", blockquote)),
		locateBlock(span.Context("divider", divider)),
		locateBlock(span.Context("placeholder", placeholder)),
		locateBlock(span.Context("comment", commentBlock)),
		locateBlock(span.Context("paragraph", paragraph)),
	)(s)
}

// paragraph parses consecutive lines of inline content.
func paragraph(s span.Span) (span.Span, elements.Paragraph, error) {
	line := span.Preceded(span.Space0, inlineElementContainer)
	return span.Map(
		span.Many1(span.Delimited(continueParagraph, line, span.EndOfLineOrInput)),
		func(lines []elements.InlineElementContainer) elements.Paragraph {
			return elements.Paragraph{Lines: lines}
		},
	)(s)
}

// continueParagraph succeeds when the line at s does not begin another
// block. Indented blockquote lines continue a paragraph.
func continueParagraph(s span.Span) (span.Span, span.Unit, error) {
	switch {
	case span.Matches(s, header),
		span.Matches(s, definitionList),
		span.Matches(s, list),
		span.Matches(s, table),
		span.Matches(s, codeBlock),
		span.Matches(s, mathBlock),
		span.Matches(s, span.BlankLine),
		span.Matches(s, arrowBlockquote),
		span.Matches(s, divider),
		span.Matches(s, placeholder):
		return s, span.Unit{}, span.Fail(s, "paragraph line")
	}
	return s, span.Unit{}, nil
}
