package located

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Located is a value together with the region it was parsed from.
type Located[T any] struct {
	Value  T      `json:"value"`
	Region Region `json:"region"`
}

// New wraps value with region.
func New[T any](value T, region Region) Located[T] {
	return Located[T]{Value: value, Region: region}
}

// Map transforms the value of l, keeping its region.
func Map[T, U any](l Located[T], fn func(T) U) Located[U] {
	return Located[U]{Value: fn(l.Value), Region: l.Region}
}

// Upcast converts a located value into a located interface value it implements.
func Upcast[T any, U any](l Located[T]) Located[U] {
	return Located[U]{Value: any(l.Value).(U), Region: l.Region}
}

// IgnoreRegions is a cmp option that skips Region values when comparing.
//
//nolint:gochecknoglobals // Immutable comparison option.
var IgnoreRegions = cmpopts.IgnoreTypes(Region{})

// Equal compares a and b ignoring every Region nested inside them.
// This is the comparison used for parser output where provenance is
// not under test.
func Equal(a, b any, opts ...cmp.Option) bool {
	return cmp.Equal(a, b, append(opts, IgnoreRegions, cmpopts.EquateEmpty())...)
}

// StrictEqual compares a and b including their regions.
func StrictEqual(a, b any, opts ...cmp.Option) bool {
	return cmp.Equal(a, b, append(opts, cmpopts.EquateEmpty())...)
}

// Diff reports the differences between a and b ignoring regions.
func Diff(a, b any, opts ...cmp.Option) string {
	return cmp.Diff(a, b, append(opts, IgnoreRegions, cmpopts.EquateEmpty())...)
}
