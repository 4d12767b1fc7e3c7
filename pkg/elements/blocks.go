package elements

import (
	"time"

	"github.com/yaklabco/govimwiki/pkg/located"
)

// Header is a section title such as "== Title ==".
type Header struct {
	Level    int                    `json:"level"`
	Content  InlineElementContainer `json:"content"`
	Centered bool                   `json:"centered,omitempty"`
}

// Kind implements Element.
func (Header) Kind() Kind { return KindHeader }

// Children returns the header's inline content.
func (h Header) Children() []located.Located[Element] { return h.Content.Elements.Elements() }

// Paragraph is a run of consecutive text lines.
type Paragraph struct {
	Lines []InlineElementContainer `json:"lines"`
}

// Kind implements Element.
func (Paragraph) Kind() Kind { return KindParagraph }

// Children returns the inline elements of every line in order.
func (p Paragraph) Children() []located.Located[Element] {
	var out []located.Located[Element]
	for _, line := range p.Lines {
		out = append(out, line.Elements.Elements()...)
	}
	return out
}

// Term is the left-hand side of a definition list entry.
type Term struct {
	Content InlineElementContainer `json:"content"`
}

// Kind implements Element.
func (Term) Kind() Kind { return KindTerm }

// Children returns the term's inline content.
func (t Term) Children() []located.Located[Element] { return t.Content.Elements.Elements() }

// Definition is one definition of a term.
type Definition struct {
	Content InlineElementContainer `json:"content"`
}

// Kind implements Element.
func (Definition) Kind() Kind { return KindDefinition }

// Children returns the definition's inline content.
func (d Definition) Children() []located.Located[Element] {
	return d.Content.Elements.Elements()
}

// TermAndDefinitions pairs a term with its definitions.
type TermAndDefinitions struct {
	Term        located.Located[Term]         `json:"term"`
	Definitions []located.Located[Definition] `json:"definitions"`
}

// DefinitionList is a sequence of terms and their definitions.
type DefinitionList struct {
	Items []TermAndDefinitions `json:"items"`
}

// Kind implements Element.
func (DefinitionList) Kind() Kind { return KindDefinitionList }

// Children returns each term followed by its definitions.
func (d DefinitionList) Children() []located.Located[Element] {
	var out []located.Located[Element]
	for _, item := range d.Items {
		out = append(out, located.Upcast[Term, Element](item.Term))
		for _, def := range item.Definitions {
			out = append(out, located.Upcast[Definition, Element](def))
		}
	}
	return out
}

// Lookup returns the definitions of the first term whose plain text is term.
func (d DefinitionList) Lookup(term string) ([]located.Located[Definition], bool) {
	for _, item := range d.Items {
		if item.Term.Value.Content.PlainText() == term {
			return item.Definitions, true
		}
	}
	return nil, false
}

// CellKind distinguishes the variants of a table cell.
type CellKind int

// Table cell variants.
const (
	CellContent CellKind = iota
	CellSpanLeft
	CellSpanAbove
	CellAlign
)

// ColumnAlign is the alignment declared by a divider cell.
type ColumnAlign int

// Column alignments.
const (
	AlignLeft ColumnAlign = iota
	AlignCenter
	AlignRight
)

// String returns the alignment name.
func (a ColumnAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Cell is one table cell.
type Cell struct {
	CellKind CellKind               `json:"cell_kind"`
	Align    ColumnAlign            `json:"align,omitempty"`
	Content  InlineElementContainer `json:"content"`
}

// Kind implements Element.
func (Cell) Kind() Kind { return KindCell }

// Children returns the cell's inline content.
func (c Cell) Children() []located.Located[Element] { return c.Content.Elements.Elements() }

// IsAlign returns true if the cell is a divider cell.
func (c Cell) IsAlign() bool { return c.CellKind == CellAlign }

// Row is a table row.
type Row struct {
	Cells []located.Located[Cell] `json:"cells"`
}

// IsDivider returns true if every cell of the row is a divider cell.
func (r Row) IsDivider() bool {
	for _, c := range r.Cells {
		if !c.Value.IsAlign() {
			return false
		}
	}
	return len(r.Cells) > 0
}

// Table is a pipe-delimited grid.
type Table struct {
	Rows     []Row `json:"rows"`
	Centered bool  `json:"centered,omitempty"`
}

// Kind implements Element.
func (Table) Kind() Kind { return KindTable }

// Children returns every cell in row-major order.
func (t Table) Children() []located.Located[Element] {
	var out []located.Located[Element]
	for _, row := range t.Rows {
		for _, c := range row.Cells {
			out = append(out, located.Upcast[Cell, Element](c))
		}
	}
	return out
}

// Header returns the rows above the first divider row, if the table has one.
func (t Table) Header() []Row {
	for i, row := range t.Rows {
		if row.IsDivider() {
			return t.Rows[:i]
		}
	}
	return nil
}

// Body returns the rows that are neither header nor divider rows.
func (t Table) Body() []Row {
	header := t.Header()
	var out []Row
	for _, row := range t.Rows[len(header):] {
		if !row.IsDivider() {
			out = append(out, row)
		}
	}
	return out
}

// CodeBlock is a preformatted block fenced by "{{{" and "}}}".
type CodeBlock struct {
	Language string            `json:"language,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Lines    []string          `json:"lines"`
}

// Kind implements Element.
func (CodeBlock) Kind() Kind { return KindCodeBlock }

// Children returns nil; code blocks are leaves.
func (CodeBlock) Children() []located.Located[Element] { return nil }

// MathBlock is a display formula fenced by "{{$" and "}}$".
type MathBlock struct {
	Lines       []string `json:"lines"`
	Environment string   `json:"environment,omitempty"`
}

// Kind implements Element.
func (MathBlock) Kind() Kind { return KindMathBlock }

// Children returns nil; math blocks are leaves.
func (MathBlock) Children() []located.Located[Element] { return nil }

// Blockquote is a quoted block, either indented or prefixed with "> ".
type Blockquote struct {
	Lines []string `json:"lines"`
}

// Kind implements Element.
func (Blockquote) Kind() Kind { return KindBlockquote }

// Children returns nil; blockquotes are leaves.
func (Blockquote) Children() []located.Located[Element] { return nil }

// Divider is a horizontal rule.
type Divider struct{}

// Kind implements Element.
func (Divider) Kind() Kind { return KindDivider }

// Children returns nil.
func (Divider) Children() []located.Located[Element] { return nil }

// PlaceholderKind distinguishes the "%name" directives.
type PlaceholderKind int

// Placeholder directives.
const (
	PlaceholderOther PlaceholderKind = iota
	PlaceholderTitle
	PlaceholderNoHTML
	PlaceholderTemplate
	PlaceholderDate
)

// Placeholder is a page directive such as "%title My Page".
type Placeholder struct {
	PlaceholderKind PlaceholderKind `json:"placeholder_kind"`
	Name            string          `json:"name,omitempty"`
	Value           string          `json:"value,omitempty"`
	Date            time.Time       `json:"date,omitzero"`
}

// Kind implements Element.
func (Placeholder) Kind() Kind { return KindPlaceholder }

// Children returns nil.
func (Placeholder) Children() []located.Located[Element] { return nil }

// Comment is either a "%%" line comment or a "%%+ ... +%%" block.
type Comment struct {
	MultiLine bool     `json:"multi_line,omitempty"`
	Lines     []string `json:"lines"`
}

// Kind implements Element.
func (Comment) Kind() Kind { return KindComment }

// Children returns nil.
func (Comment) Children() []located.Located[Element] { return nil }

func (Header) isElement()         {}
func (Paragraph) isElement()      {}
func (Term) isElement()           {}
func (Definition) isElement()     {}
func (DefinitionList) isElement() {}
func (Cell) isElement()           {}
func (Table) isElement()          {}
func (CodeBlock) isElement()      {}
func (MathBlock) isElement()      {}
func (Blockquote) isElement()     {}
func (Divider) isElement()        {}
func (Placeholder) isElement()    {}
func (Comment) isElement()        {}

func (Header) isBlock()         {}
func (Paragraph) isBlock()      {}
func (List) isBlock()           {}
func (DefinitionList) isBlock() {}
func (Table) isBlock()          {}
func (CodeBlock) isBlock()      {}
func (MathBlock) isBlock()      {}
func (Blockquote) isBlock()     {}
func (Divider) isBlock()        {}
func (Placeholder) isBlock()    {}
func (Comment) isBlock()        {}
