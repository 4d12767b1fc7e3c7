package elements

import (
	"strings"

	"github.com/yaklabco/govimwiki/pkg/located"
)

// Element is any node of the document model.
type Element interface {
	// Kind identifies what type of element this is.
	Kind() Kind

	// Children returns the element's direct child nodes in reading order.
	Children() []located.Located[Element]

	isElement()
}

// BlockElement is an element that can appear at the top level of a page.
type BlockElement interface {
	Element
	isBlock()
}

// InlineElement is an element that appears within a line of text.
type InlineElement interface {
	Element
	isInline()
}

// InlineElements is a sequence of located inline elements.
type InlineElements []located.Located[InlineElement]

// BlockElements is a sequence of located block elements.
type BlockElements []located.Located[BlockElement]

// Elements upcasts the sequence to generic elements.
func (es InlineElements) Elements() []located.Located[Element] {
	out := make([]located.Located[Element], 0, len(es))
	for _, e := range es {
		out = append(out, located.Upcast[InlineElement, Element](e))
	}
	return out
}

// Elements upcasts the sequence to generic elements.
func (es BlockElements) Elements() []located.Located[Element] {
	out := make([]located.Located[Element], 0, len(es))
	for _, e := range es {
		out = append(out, located.Upcast[BlockElement, Element](e))
	}
	return out
}

// InlineElementContainer holds the inline elements of a single logical
// piece of content, such as a header title or one paragraph line.
type InlineElementContainer struct {
	Elements InlineElements `json:"elements"`
}

// NewInlineElementContainer wraps elements.
func NewInlineElementContainer(elements ...located.Located[InlineElement]) InlineElementContainer {
	return InlineElementContainer{Elements: elements}
}

// Len returns the number of elements in the container.
func (c InlineElementContainer) Len() int { return len(c.Elements) }

// PlainText renders the container without markup.
func (c InlineElementContainer) PlainText() string {
	var b strings.Builder
	for _, e := range c.Elements {
		writePlainText(&b, e.Value)
	}
	return b.String()
}

// Concat appends the elements of other to c.
func (c InlineElementContainer) Concat(other InlineElementContainer) InlineElementContainer {
	elems := make(InlineElements, 0, len(c.Elements)+len(other.Elements))
	elems = append(elems, c.Elements...)
	elems = append(elems, other.Elements...)
	return InlineElementContainer{Elements: elems}
}

func writePlainText(b *strings.Builder, e InlineElement) {
	switch v := e.(type) {
	case Text:
		b.WriteString(string(v))
	case DecoratedText:
		for _, c := range v.Contents {
			writePlainText(b, c.Value)
		}
	case Link:
		if v.Description != nil && v.Description.Text != "" {
			b.WriteString(v.Description.Text)
		} else {
			b.WriteString(v.Target())
		}
	case CodeInline:
		b.WriteString(v.Code)
	case MathInline:
		b.WriteString(v.Formula)
	case Keyword:
		b.WriteString(string(v))
	case Tags:
		b.WriteString(":" + strings.Join(v.Names, ":") + ":")
	}
}

// Page is a parsed vimwiki document.
type Page struct {
	Elements BlockElements `json:"elements"`
}

// Len returns the number of top-level elements.
func (p *Page) Len() int { return len(p.Elements) }

// IsEmpty returns true if the page has no elements.
func (p *Page) IsEmpty() bool { return len(p.Elements) == 0 }
