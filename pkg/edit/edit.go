// Package edit applies byte-range replacements to page source and renders
// the result as a unified diff.
package edit

import "github.com/yaklabco/govimwiki/pkg/located"

// TextEdit replaces the bytes [Start, End) with NewText.
type TextEdit struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	NewText string `json:"new_text"`
}

// Len returns the number of bytes the edit replaces.
func (e TextEdit) Len() int { return e.End - e.Start }

// IsInsert returns true if the edit replaces nothing.
func (e TextEdit) IsInsert() bool { return e.Start == e.End }

// Builder accumulates edits against one piece of content.
type Builder struct {
	edits []TextEdit
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Replace replaces bytes [start, end) with text.
func (b *Builder) Replace(start, end int, text string) *Builder {
	b.edits = append(b.edits, TextEdit{Start: start, End: end, NewText: text})
	return b
}

// ReplaceRegion replaces the bytes covered by r with text.
func (b *Builder) ReplaceRegion(r located.Region, text string) *Builder {
	return b.Replace(r.Offset, r.Offset+r.Len, text)
}

// Insert inserts text at offset.
func (b *Builder) Insert(offset int, text string) *Builder {
	return b.Replace(offset, offset, text)
}

// Delete removes bytes [start, end).
func (b *Builder) Delete(start, end int) *Builder {
	return b.Replace(start, end, "")
}

// Len returns the number of accumulated edits.
func (b *Builder) Len() int { return len(b.edits) }

// Edits returns a copy of the accumulated edits in insertion order.
func (b *Builder) Edits() []TextEdit {
	return append([]TextEdit(nil), b.edits...)
}
