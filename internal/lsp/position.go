package lsp

import (
	"sort"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/govimwiki/pkg/located"
)

// lineIndex converts between byte offsets and protocol positions, whose
// characters count UTF-16 code units.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := range len(text) {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{text: text, starts: starts}
}

func (ix *lineIndex) lineEnd(line int) int {
	if line+1 < len(ix.starts) {
		return ix.starts[line+1] - 1
	}
	return len(ix.text)
}

// position converts a byte offset into a zero-based protocol position.
func (ix *lineIndex) position(offset int) protocol.Position {
	offset = max(0, min(offset, len(ix.text)))
	line := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > offset }) - 1

	var units int
	for _, r := range ix.text[ix.starts[line]:offset] {
		units += utf16Len(r)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(units)}
}

// offset converts a protocol position into a byte offset, clamping to the
// end of the line or text.
func (ix *lineIndex) offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(ix.starts) {
		return len(ix.text)
	}
	start, end := ix.starts[line], ix.lineEnd(line)

	units := int(pos.Character)
	i := start
	for i < end && units > 0 {
		r, size := utf8.DecodeRuneInString(ix.text[i:end])
		units -= utf16Len(r)
		i += size
	}
	return i
}

// rangeOf converts a region into a protocol range whose end is exclusive.
func (ix *lineIndex) rangeOf(r located.Region) protocol.Range {
	return protocol.Range{
		Start: ix.position(r.Offset),
		End:   ix.position(r.Offset + r.Len),
	}
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
