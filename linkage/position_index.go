package linkage

import (
	"github.com/biogo/store/llrb"
	"github.com/grailbio/svtools/interval"
	"github.com/grailbio/svtools/sv"
)

// posKey orders breakends of one chromosome by position, then id.
type posKey struct {
	pos int
	id  sv.BreakendID
}

// Compare compares two posKey objects for use in llrb.
func (k posKey) Compare(c2 llrb.Comparable) int {
	k2 := c2.(posKey)
	switch {
	case k.pos < k2.pos:
		return -1
	case k.pos > k2.pos:
		return 1
	case k.id < k2.id:
		return -1
	case k.id > k2.id:
		return 1
	}
	return 0
}

// positionIndex is a per-chromosome ordered index of breakend positions.
type positionIndex struct {
	store   *sv.Store
	byChrom map[string]*llrb.Tree
	// slack is the largest distance between a breakend's position and either
	// end of its confidence range, per chromosome.
	slack map[string]int
}

// newPositionIndex indexes every breakend of store for which include returns
// true. A nil include indexes everything.
func newPositionIndex(store *sv.Store, include func(sv.BreakendID) bool) *positionIndex {
	x := &positionIndex{
		store:   store,
		byChrom: map[string]*llrb.Tree{},
		slack:   map[string]int{},
	}
	for i := 0; i < store.NumBreakends(); i++ {
		id := sv.BreakendID(i)
		if include != nil && !include(id) {
			continue
		}
		b := store.Breakend(id)
		tree := x.byChrom[b.Chrom]
		if tree == nil {
			tree = &llrb.Tree{}
			x.byChrom[b.Chrom] = tree
		}
		tree.Insert(posKey{b.Position, id})
		ci := b.ConfidenceInterval
		if -ci.Start > x.slack[b.Chrom] {
			x.slack[b.Chrom] = -ci.Start
		}
		if ci.End > x.slack[b.Chrom] {
			x.slack[b.Chrom] = ci.End
		}
	}
	return x
}

// near calls fn, in position order, for every indexed breakend whose
// confidence range could intersect r.  fn must apply its own exact test.
func (x *positionIndex) near(chrom string, r interval.Interval, fn func(b *sv.Breakend)) {
	tree := x.byChrom[chrom]
	if tree == nil {
		return
	}
	r = r.Widen(x.slack[chrom])
	tree.DoRange(func(c llrb.Comparable) bool {
		fn(x.store.Breakend(c.(posKey).id))
		return false
	}, posKey{r.Start, sv.NoBreakend}, posKey{r.End + 1, sv.NoBreakend})
}
