package interval

import (
	"fmt"
	"sort"
)

// Interval is a closed range [Start, End].
//
// INVARIANT: Start <= End.
type Interval struct{ Start, End int }

// Zero is the empty offset interval [0, 0].
var Zero = Interval{}

// New creates a new Interval.
//
// REQUIRES: start <= end.
func New(start, end int) Interval {
	if end < start {
		panic(fmt.Sprintf("inverted interval [%d, %d]", start, end))
	}
	return Interval{start, end}
}

// At returns the single-position interval [pos, pos].
func At(pos int) Interval { return Interval{pos, pos} }

// ContainsZero checks if the interval, read as an offset, covers the anchor
// position itself.
func (iv Interval) ContainsZero() bool { return iv.Start <= 0 && iv.End >= 0 }

// Contains checks if pos lies inside the interval.
func (iv Interval) Contains(pos int) bool { return iv.Start <= pos && pos <= iv.End }

// Len returns the number of positions covered.
func (iv Interval) Len() int { return iv.End - iv.Start + 1 }

// Shift moves both ends by d.
func (iv Interval) Shift(d int) Interval { return Interval{iv.Start + d, iv.End + d} }

// Widen extends both ends by margin.
func (iv Interval) Widen(margin int) Interval {
	return Interval{iv.Start - margin, iv.End + margin}
}

// Union returns the smallest interval covering both iv and o.
func (iv Interval) Union(o Interval) Interval {
	return Interval{minInt(iv.Start, o.Start), maxInt(iv.End, o.End)}
}

// Overlaps checks if the two intervals share at least one position.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start <= o.End && o.Start <= iv.End
}

// Gap returns the number of positions separating the two intervals, or zero
// if they overlap.
func (iv Interval) Gap(o Interval) int {
	if iv.End < o.Start {
		return o.Start - iv.End
	}
	if o.End < iv.Start {
		return iv.Start - o.End
	}
	return 0
}

// Centre returns the midpoint, truncated towards zero.
func (iv Interval) Centre() int { return (iv.Start + iv.End) / 2 }

// String implements fmt.Stringer.
func (iv Interval) String() string { return fmt.Sprintf("[%d,%d]", iv.Start, iv.End) }

// SearchStarts returns the index of the first interval in a whose Start is >=
// x, or len(a) if there is none. a must be sorted by Start.  It's exactly the
// same as sort.SearchInts(), except it looks at the Start field.
func SearchStarts(a []Interval, x int) int {
	return sort.Search(len(a), func(i int) bool { return a[i].Start >= x })
}

// ExpsearchStarts returns SearchStarts(a, x) given that the answer is at
// least idx.  It gallops forward from idx before bisecting, so a forward sweep
// with nondecreasing x touches few elements.
func ExpsearchStarts(a []Interval, x int, idx int) int {
	lo, hi := idx, idx
	for step := 1; hi < len(a) && a[hi].Start < x; step *= 2 {
		lo = hi + 1
		hi += step
	}
	if hi > len(a) {
		hi = len(a)
	}
	return lo + SearchStarts(a[lo:hi], x)
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func maxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}
