package buffer

import "fmt"

// Range is a half-open span of buffer positions: [Start, End).
type Range struct {
	Start Offset // inclusive
	End   Offset // exclusive
}

// NewRange creates a Range from start and end positions.
func NewRange(start, end Offset) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in units.
func (r Range) Len() Offset {
	return r.End - r.Start
}

// IsEmpty reports whether the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid reports whether Start <= End.
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// Contains reports whether pos falls within the range.
func (r Range) Contains(pos Offset) bool {
	return pos >= r.Start && pos < r.End
}

// Overlaps reports whether this range shares any position with other.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Intersect returns the overlap of two ranges, empty when they are
// disjoint.
func (r Range) Intersect(other Range) Range {
	start := r.Start
	if other.Start > start {
		start = other.Start
	}
	end := r.End
	if other.End < end {
		end = other.End
	}
	if start >= end {
		return Range{Start: start, End: start}
	}
	return Range{Start: start, End: end}
}

// Union returns the smallest range containing both ranges.
func (r Range) Union(other Range) Range {
	start := r.Start
	if other.Start < start {
		start = other.Start
	}
	end := r.End
	if other.End > end {
		end = other.End
	}
	return Range{Start: start, End: end}
}

// Shift returns the range moved by delta.
func (r Range) Shift(delta Offset) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}
