package vimwiki

import (
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/located"
	"github.com/yaklabco/govimwiki/pkg/span"
)

// table parses rows of "|cell|cell|". Indenting the first row centers the
// table. A table made only of divider rows is rejected.
func table(s span.Span) (span.Span, elements.Table, error) {
	if _, _, err := span.BeginningOfLine(s); err != nil {
		return s, elements.Table{}, err
	}
	centered := indentation(s) > 0

	rest, rows, err := span.Many1(tableRow)(s)
	if err != nil {
		return s, elements.Table{}, err
	}

	allDividers := true
	for _, row := range rows {
		if !row.IsDivider() {
			allDividers = false
			break
		}
	}
	if allDividers {
		return s, elements.Table{}, span.Fail(s, "table row with content")
	}

	return rest, elements.Table{Rows: rows, Centered: centered}, nil
}

func tableRow(s span.Span) (span.Span, elements.Row, error) {
	cells := span.SeparatedList1(span.Char('|'), span.Locate(cell))
	return span.Map(
		span.Delimited(
			span.Preceded(span.BeginningOfLine, span.Preceded(span.Space0, span.Char('|'))),
			cells,
			span.Preceded(span.Char('|'), span.Preceded(span.Space0, span.EndOfLineOrInput)),
		),
		func(cs []located.Located[elements.Cell]) elements.Row { return elements.Row{Cells: cs} },
	)(s)
}

// cell parses a single cell, which ends before the next '|'.
func cell(s span.Span) (span.Span, elements.Cell, error) {
	return span.Alt(spanAboveCell, spanLeftCell, alignCell, contentCell)(s)
}

func beforePipe[T any](p span.Parser[T]) span.Parser[T] {
	return span.Delimited(span.Space0, p, span.Preceded(span.Space0, span.Peek(span.Char('|'))))
}

func spanAboveCell(s span.Span) (span.Span, elements.Cell, error) {
	return span.Value(elements.Cell{CellKind: elements.CellSpanAbove}, beforePipe(span.Tag(`\/`)))(s)
}

func spanLeftCell(s span.Span) (span.Span, elements.Cell, error) {
	return span.Value(elements.Cell{CellKind: elements.CellSpanLeft}, beforePipe(span.Tag(">")))(s)
}

// alignCell parses a divider cell: ":-:" centers, "-:" right aligns and
// ":-" or "-" left aligns.
func alignCell(s span.Span) (span.Span, elements.Cell, error) {
	dashes := span.TakeWhile1(func(b byte) bool { return b == '-' }, "'-'")
	marks := span.Recognize(span.Preceded(span.Opt(span.Char(':')), span.Terminated(dashes, span.Opt(span.Char(':')))))

	return span.Map(beforePipe(marks), func(m span.Span) elements.Cell {
		text := m.Remaining()
		left, right := text[0] == ':', text[len(text)-1] == ':'
		c := elements.Cell{CellKind: elements.CellAlign}
		switch {
		case left && right:
			c.Align = elements.AlignCenter
		case right:
			c.Align = elements.AlignRight
		default:
			c.Align = elements.AlignLeft
		}
		return c
	})(s)
}

func contentCell(s span.Span) (span.Span, elements.Cell, error) {
	rest, raw, err := span.TakeLineUntil1("|")(s)
	if err != nil {
		return s, elements.Cell{}, err
	}
	if !rest.HasPrefix("|") {
		return s, elements.Cell{}, span.Fail(rest, "'|'")
	}
	body := trimmed(raw)
	if body.IsEmpty() {
		return rest, elements.Cell{CellKind: elements.CellContent}, nil
	}
	_, content, err := span.AllConsuming(inlineElementContainer)(body)
	if err != nil {
		return s, elements.Cell{}, err
	}
	return rest, elements.Cell{CellKind: elements.CellContent, Content: content}, nil
}
