package linkage

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/svtools/interval"
	"github.com/grailbio/svtools/sv"
)

// DsbOpts configures FindDsbLinks.
type DsbOpts struct {
	// MaxDistance is the largest gap between two breakends that can still be
	// the two sides of one double-strand break.
	MaxDistance int
	// MaxCandidates caps the number of partners a breakend may have.  A
	// breakend with more candidates than this is ambiguous and gets no DSB
	// link.
	MaxCandidates int
}

// DefaultDsbOpts are the default DSB settings.
var DefaultDsbOpts = DsbOpts{
	MaxDistance:   30,
	MaxCandidates: 1,
}

// dsbDistance is the gap between each breakend's position and the other's
// match range, whichever is smaller.  Imprecise breakends are not widened.
func dsbDistance(a, b *sv.Breakend) int {
	d1 := interval.At(a.Position).Gap(b.MatchRange())
	d2 := interval.At(b.Position).Gap(a.MatchRange())
	if d2 < d1 {
		return d2
	}
	return d1
}

// FindDsbLinks links facing breakends of different SVs on the same chromosome
// that are within opts.MaxDistance of each other.  Breakends already linked in
// assembled, or listed in duplicates, take no part.  A pair is linked only if
// neither side has more than opts.MaxCandidates candidates, so the result is
// symmetric.  The returned store holds DSB links only; the caller merges it.
func FindDsbLinks(store *sv.Store, assembled *LinkStore, duplicates sv.BreakendSet, opts DsbOpts) *LinkStore {
	eligible := func(id sv.BreakendID) bool {
		return (assembled == nil || !assembled.HasLinks(id)) && !duplicates.Contains(id)
	}
	index := newPositionIndex(store, eligible)

	candidates := map[sv.BreakendID][]sv.BreakendID{}
	for i := 0; i < store.NumBreakends(); i++ {
		id := sv.BreakendID(i)
		if !eligible(id) {
			continue
		}
		b := store.Breakend(id)
		owner := store.SvOf(id)
		index.near(b.Chrom, b.MatchRange().Widen(opts.MaxDistance), func(c *sv.Breakend) {
			if c.ID == id || store.SvOf(c.ID) == owner || !b.Facing(c) {
				return
			}
			if dsbDistance(b, c) > opts.MaxDistance {
				return
			}
			candidates[id] = append(candidates[id], c.ID)
		})
	}

	links := NewLinkStore()
	n := 0
	for i := 0; i < store.NumBreakends(); i++ {
		id := sv.BreakendID(i)
		cands := candidates[id]
		if len(cands) > opts.MaxCandidates {
			log.Debug.Printf("dsb: breakend %v has %d candidates, max %d", store.Breakend(id), len(cands), opts.MaxCandidates)
			continue
		}
		for _, c := range cands {
			if c < id || len(candidates[c]) > opts.MaxCandidates {
				continue
			}
			links.Add(Link{Type: Dsb, ID: fmt.Sprintf("dsb%d", n), First: id, Second: c})
			n++
		}
	}
	return links
}
