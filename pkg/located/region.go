package located

import "fmt"

// Region describes the slice of source that produced an element.
//
// Offset and Len are byte based and always populated. Start and End are
// only filled in by the accurate locator; End is the position of the last
// consumed byte, or equal to Start for an empty region.
type Region struct {
	Offset int      `json:"offset"`
	Len    int      `json:"len"`
	Depth  int      `json:"depth,omitempty"`
	Start  Position `json:"start"`
	End    Position `json:"end"`
}

// NewRegion creates a region covering len bytes from offset with no
// line and column information.
func NewRegion(offset, length int) Region {
	return Region{Offset: offset, Len: length}
}

// EndOffset returns the exclusive end offset of the region.
func (r Region) EndOffset() int {
	return r.Offset + r.Len
}

// IsEmpty returns true if the region covers no bytes.
func (r Region) IsEmpty() bool {
	return r.Len == 0
}

// Contains reports whether offset falls within [Offset, Offset+Len).
func (r Region) Contains(offset int) bool {
	return offset >= r.Offset && offset < r.Offset+r.Len
}

// HasPosition returns true if line and column information is present.
func (r Region) HasPosition() bool {
	return r.Start.IsValid()
}

// String formats the region for diagnostics.
func (r Region) String() string {
	if r.HasPosition() {
		return fmt.Sprintf("%s-%s [%d+%d]", r.Start, r.End, r.Offset, r.Len)
	}
	return fmt.Sprintf("[%d+%d]", r.Offset, r.Len)
}
