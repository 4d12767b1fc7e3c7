// Package located pairs parsed values with the source region they came from.
package located

import "fmt"

// Position is a 1-based line and column within a source buffer.
// Columns count bytes, not runes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// NewPosition creates a position from a 1-based line and column.
func NewPosition(line, column int) Position {
	return Position{Line: line, Column: column}
}

// IsValid returns true if the position has a valid line and column (both >= 1).
func (p Position) IsValid() bool {
	return p.Line >= 1 && p.Column >= 1
}

// Zero returns the 0-based line and column for consumers such as LSP clients.
func (p Position) Zero() (line, column int) {
	return max(p.Line-1, 0), max(p.Column-1, 0)
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// String formats the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
