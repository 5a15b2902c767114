package linkage

import (
	"fmt"
	"math"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/svtools/interval"
	"github.com/grailbio/svtools/sv"
)

// TransitiveOpts bounds the search for alternate paths.
type TransitiveOpts struct {
	// MaxPathLength is the largest number of other SVs a path may traverse.
	MaxPathLength int
	// MaxExploredNodes caps the number of search states expanded for one
	// query.  The search stops, keeping whatever paths it has completed, once
	// the cap is hit.
	MaxExploredNodes int
	// MaxTransitiveDistance is the longest templated sequence a TRANSITIVE
	// hop may skip over.
	MaxTransitiveDistance int
	// MaxPathsPerSv caps the number of alternate paths FindAlternatePaths
	// reports for one SV.
	MaxPathsPerSv int
}

// DefaultTransitiveOpts are the default search bounds.
var DefaultTransitiveOpts = TransitiveOpts{
	MaxPathLength:         2,
	MaxExploredNodes:      100,
	MaxTransitiveDistance: 1000,
	MaxPathsPerSv:         1,
}

// TransitiveLinkFinder searches for indirect connections between the two
// breakends of an SV through other SVs.  Thread compatible.
type TransitiveLinkFinder struct {
	store *sv.Store
	links *LinkStore
	index *positionIndex
	opts  TransitiveOpts
}

// NewTransitiveLinkFinder creates a finder over links, normally the merged
// ASSEMBLY and DSB links of store.
func NewTransitiveLinkFinder(store *sv.Store, links *LinkStore, opts TransitiveOpts) *TransitiveLinkFinder {
	if links == nil {
		links = NewLinkStore()
	}
	return &TransitiveLinkFinder{
		store: store,
		links: links,
		index: newPositionIndex(store, nil),
		opts:  opts,
	}
}

// searchState is a partial path that has just arrived at breakend at, and
// must continue through the SV owning it.
type searchState struct {
	at      sv.BreakendID
	links   []Link
	visited []sv.BreakendID
	svs     int
	minQual float64
}

type completePath struct {
	links   []Link
	svs     int
	minQual float64
}

func containsBreakend(ids []sv.BreakendID, id sv.BreakendID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// sameJunction checks if b could be a call of the same junction as target.
func sameJunction(b, target *sv.Breakend) bool {
	return b.Chrom == target.Chrom && b.Orient == target.Orient &&
		b.ConfidenceRange().Overlaps(target.ConfidenceRange())
}

// FindPaths searches for simple paths from breakend from to its partner that
// go through other SVs.  A path enters an SV at a breakend matching from,
// crosses it, and either ends at a breakend matching the partner or hops to
// another SV along an ASSEMBLY, DSB or TRANSITIVE link.  The result is sorted
// best first: fewest SVs, then the highest quality of the weakest SV, then
// fewest links.  It returns nil for a single breakend, or if no path exists
// within the bounds.
func (f *TransitiveLinkFinder) FindPaths(from sv.BreakendID) []AlternatePath {
	target := f.store.OtherBreakend(from)
	if target == sv.NoBreakend {
		return nil
	}
	testSv := f.store.SvOf(from)
	src, dst := f.store.Breakend(from), f.store.Breakend(target)

	var queue []searchState
	f.index.near(src.Chrom, src.ConfidenceRange(), func(c *sv.Breakend) {
		if f.store.SvOf(c.ID) == testSv || f.store.IsSgl(c.ID) || !sameJunction(c, src) {
			return
		}
		queue = append(queue, searchState{
			at:      c.ID,
			visited: []sv.BreakendID{from, c.ID},
			minQual: math.Inf(1),
		})
	})

	var complete []completePath
	explored := 0
	for len(queue) > 0 {
		st := queue[0]
		queue = queue[1:]
		if explored >= f.opts.MaxExploredNodes {
			log.Debug.Printf("transitive: search from %v stopped after %d nodes", src, explored)
			break
		}
		explored++
		if len(complete) > 0 && st.svs >= complete[0].svs {
			// Every remaining state would make a longer path.
			break
		}
		exit := f.store.OtherBreakend(st.at)
		if exit == sv.NoBreakend || containsBreakend(st.visited, exit) {
			continue
		}
		svID := f.store.SvOf(st.at)
		links := append(append([]Link(nil), st.links...), pairLink(f.store, st.at))
		visited := append(append([]sv.BreakendID(nil), st.visited...), exit)
		minQual := math.Min(st.minQual, f.store.SvQual(svID))
		nSvs := st.svs + 1

		if sameJunction(f.store.Breakend(exit), dst) {
			complete = append(complete, completePath{links: links, svs: nSvs, minQual: minQual})
			continue
		}
		if nSvs >= f.opts.MaxPathLength {
			continue
		}
		for _, hop := range f.hops(exit) {
			next := hop.Second
			if containsBreakend(visited, next) || f.store.SvOf(next) == testSv {
				continue
			}
			queue = append(queue, searchState{
				at:      next,
				links:   append(append([]Link(nil), links...), hop),
				visited: append(append([]sv.BreakendID(nil), visited...), next),
				svs:     nSvs,
				minQual: minQual,
			})
		}
	}
	if len(complete) == 0 {
		return nil
	}
	sort.SliceStable(complete, func(i, j int) bool {
		ci, cj := complete[i], complete[j]
		if ci.svs != cj.svs {
			return ci.svs < cj.svs
		}
		if ci.minQual != cj.minQual {
			return ci.minQual > cj.minQual
		}
		return len(ci.links) < len(cj.links)
	})
	paths := make([]AlternatePath, len(complete))
	for i, c := range complete {
		paths[i] = AlternatePath{Start: from, End: target, Links: c.links}
	}
	return paths
}

// FindTransitiveLinks returns the links of the best path from breakend from to
// its partner, or nil if there is none.
func (f *TransitiveLinkFinder) FindTransitiveLinks(from sv.BreakendID) []Link {
	paths := f.FindPaths(from)
	if len(paths) == 0 {
		return nil
	}
	return paths[0].Links
}

// hops lists the links a path may follow out of breakend id, each with
// First==id.  A breakend with ASSEMBLY links may only leave along them; any
// other hop would contradict the assembly.
func (f *TransitiveLinkFinder) hops(id sv.BreakendID) []Link {
	var assembled, other []Link
	for _, l := range f.links.Links(id) {
		switch l.Type {
		case Assembly:
			assembled = append(assembled, l)
		case Dsb:
			other = append(other, l)
		}
	}
	if len(assembled) > 0 {
		return assembled
	}
	b := f.store.Breakend(id)
	owner := f.store.SvOf(id)
	window := interval.At(b.Position).Widen(f.opts.MaxTransitiveDistance)
	f.index.near(b.Chrom, window, func(c *sv.Breakend) {
		if f.store.SvOf(c.ID) == owner || f.store.IsSgl(c.ID) || !b.Facing(c) {
			return
		}
		if f.links.HasLinkOfType(c.ID, Assembly) || f.links.Linked(id, c.ID) {
			return
		}
		if n := templatedLength(b, c); n < 0 || n > f.opts.MaxTransitiveDistance {
			return
		}
		other = append(other, Link{
			Type:   Transitive,
			ID:     fmt.Sprintf("trs%d_%d", id, c.ID),
			First:  id,
			Second: c.ID,
		})
	})
	return other
}

// templatedLength is the length of the reference segment between b and a
// facing breakend c, read as a templated insertion leaving through c.  It is
// negative when c lies on the wrong side of b.
func templatedLength(b, c *sv.Breakend) int {
	if b.Orient == sv.NegOrient {
		return c.Position - b.Position
	}
	return b.Position - c.Position
}
