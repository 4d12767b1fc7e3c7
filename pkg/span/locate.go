package span

import "github.com/yaklabco/govimwiki/pkg/located"

// Locate wraps the value of p with the full region it consumed,
// including line and column positions.
func Locate[T any](p Parser[T]) Parser[located.Located[T]] {
	return func(s Span) (Span, located.Located[T], error) {
		rest, v, err := p(s)
		if err != nil {
			return s, located.Located[T]{}, err
		}
		return rest, located.New(v, RegionOf(s, rest)), nil
	}
}

// LocateFast is Locate without line and column information.
func LocateFast[T any](p Parser[T]) Parser[located.Located[T]] {
	return func(s Span) (Span, located.Located[T], error) {
		rest, v, err := p(s)
		if err != nil {
			return s, located.Located[T]{}, err
		}
		region := located.NewRegion(s.Offset(), rest.Offset()-s.Offset())
		region.Depth = s.Depth()
		return rest, located.New(v, region), nil
	}
}

// RegionOf computes the region between start and rest, where rest was
// produced by parsing from start.
func RegionOf(start, rest Span) located.Region {
	length := max(rest.Offset()-start.Offset(), 0)
	region := located.NewRegion(start.Offset(), length)
	region.Depth = start.Depth()
	region.Start = start.PositionOf(start.Offset())
	region.End = region.Start
	if length > 0 {
		region.End = start.PositionOf(start.Offset() + length - 1)
	}
	return region
}

// RegionOfSpan computes the region covered by a captured span.
func RegionOfSpan(s Span) located.Region {
	return RegionOf(s, s.Advance(s.Len()))
}
