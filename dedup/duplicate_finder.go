package dedup

import (
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/svtools/linkage"
	"github.com/grailbio/svtools/sv"
)

// DuplicateFinder accumulates duplicate decisions for one sample.  Thread
// compatible.
type DuplicateFinder struct {
	store   *sv.Store
	filters *sv.FilterCache

	duplicates    sv.BreakendSet
	rescue        sv.BreakendSet
	sglDuplicates sv.BreakendSet
	// duplicateOf maps a duplicate breakend to the SV it lost to.
	duplicateOf map[sv.BreakendID]sv.SvID
}

// NewDuplicateFinder creates a finder for the SVs of store.  filters decides
// which calls pass; a nil filters treats every call as passing.
func NewDuplicateFinder(store *sv.Store, filters *sv.FilterCache) *DuplicateFinder {
	if filters == nil {
		filters = sv.NewFilterCache()
	}
	f := &DuplicateFinder{store: store, filters: filters}
	f.Clear()
	return f
}

// Clear forgets every decision made so far.
func (f *DuplicateFinder) Clear() {
	f.duplicates = sv.NewBreakendSet()
	f.rescue = sv.NewBreakendSet()
	f.sglDuplicates = sv.NewBreakendSet()
	f.duplicateOf = map[sv.BreakendID]sv.SvID{}
}

// compare ranks SVs a and b.  It returns a negative value if a is the better
// call: precise beats imprecise, then passing beats filtered, then higher
// quality wins.  Remaining ties go to the SV added to the store first, so the
// order is total.
func (f *DuplicateFinder) compare(a, b sv.SvID) int {
	if pa, pb := f.store.SvPrecise(a), f.store.SvPrecise(b); pa != pb {
		if pa {
			return -1
		}
		return 1
	}
	if pa, pb := f.filters.SvPassing(f.store, a), f.filters.SvPassing(f.store, b); pa != pb {
		if pa {
			return -1
		}
		return 1
	}
	if qa, qb := f.store.SvQual(a), f.store.SvQual(b); qa != qb {
		if qa > qb {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// FindDuplicateSVs compares the SV of each path against every SV the path goes
// through.  An SV that loses to any of them, in any of its paths, has both
// breakends marked duplicate of the best SV that beat it, and that SV's
// breakends join the rescue set.
func (f *DuplicateFinder) FindDuplicateSVs(paths []linkage.AlternatePath) {
	winners := map[sv.SvID]sv.SvID{}
	for _, p := range paths {
		orig := f.store.SvOf(p.Start)
		for _, alt := range p.PathSvs(f.store) {
			if alt == orig || f.compare(alt, orig) >= 0 {
				continue
			}
			if w, ok := winners[orig]; !ok || f.compare(alt, w) < 0 {
				winners[orig] = alt
			}
		}
	}
	losers := make([]sv.SvID, 0, len(winners))
	for id := range winners {
		losers = append(losers, id)
	}
	sort.Slice(losers, func(i, j int) bool { return losers[i] < losers[j] })
	for _, loser := range losers {
		winner := winners[loser]
		log.Debug.Printf("duplicate: %s loses to %s",
			f.store.Sv(loser).Name, f.store.Sv(winner).Name)
		for _, id := range f.store.Sv(loser).Breakends() {
			f.duplicates.Add(id)
			f.duplicateOf[id] = winner
		}
		for _, id := range f.store.Sv(winner).Breakends() {
			f.rescue.Add(id)
		}
	}
	// A winner that lost elsewhere is not reinstated.
	for id := range f.rescue {
		if f.duplicates.Contains(id) {
			delete(f.rescue, id)
		}
	}
}

type sglKey struct {
	chrom  string
	orient sv.Orientation
}

// FindDuplicateSingles compares single breakends on the same chromosome and
// orientation whose match ranges overlap.  The worse of two overlapping
// singles is marked duplicate unless links already connects it to other
// evidence.
func (f *DuplicateFinder) FindDuplicateSingles(links *linkage.LinkStore) {
	groups := map[sglKey][]sv.BreakendID{}
	for i := 0; i < f.store.NumSvs(); i++ {
		data := f.store.Sv(sv.SvID(i))
		if !data.IsSgl() {
			continue
		}
		b := f.store.Breakend(data.Start)
		key := sglKey{b.Chrom, b.Orient}
		groups[key] = append(groups[key], data.Start)
	}
	for _, ids := range groups {
		sort.Slice(ids, func(i, j int) bool {
			ri, rj := f.store.Breakend(ids[i]).MatchRange(), f.store.Breakend(ids[j]).MatchRange()
			if ri.Start != rj.Start {
				return ri.Start < rj.Start
			}
			return ids[i] < ids[j]
		})
		for i, a := range ids {
			ra := f.store.Breakend(a).MatchRange()
			for _, b := range ids[i+1:] {
				rb := f.store.Breakend(b).MatchRange()
				if rb.Start > ra.End {
					break
				}
				if !ra.Overlaps(rb) {
					continue
				}
				winner, loser := a, b
				if f.compare(f.store.SvOf(b), f.store.SvOf(a)) < 0 {
					winner, loser = b, a
				}
				if links != nil && links.HasLinks(loser) {
					continue
				}
				f.markSgl(loser, f.store.SvOf(winner))
			}
		}
	}
}

func (f *DuplicateFinder) markSgl(id sv.BreakendID, winner sv.SvID) {
	if w, ok := f.duplicateOf[id]; ok && f.compare(w, winner) <= 0 {
		return
	}
	log.Debug.Printf("duplicate: single %s loses to %s",
		f.store.Sv(f.store.SvOf(id)).Name, f.store.Sv(winner).Name)
	f.sglDuplicates.Add(id)
	f.duplicateOf[id] = winner
}

// DuplicateBreakends lists the breakends of paired SVs marked duplicate.  The
// caller must not modify the result.
func (f *DuplicateFinder) DuplicateBreakends() sv.BreakendSet { return f.duplicates }

// RescueBreakends lists the breakends of SVs that beat a duplicate.  The caller
// must not modify the result.
func (f *DuplicateFinder) RescueBreakends() sv.BreakendSet { return f.rescue }

// DuplicateSglBreakends lists the single breakends marked duplicate.  The
// caller must not modify the result.
func (f *DuplicateFinder) DuplicateSglBreakends() sv.BreakendSet { return f.sglDuplicates }

// DuplicateOf returns the SV that breakend id lost to.
func (f *DuplicateFinder) DuplicateOf(id sv.BreakendID) (sv.SvID, bool) {
	w, ok := f.duplicateOf[id]
	return w, ok
}
