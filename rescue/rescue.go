// Package rescue reinstates filtered breakends that are corroborated by
// linked evidence.
package rescue

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/svtools/linkage"
	"github.com/grailbio/svtools/sv"
)

// DefaultMinComponentSize is the default size a component must exceed to be
// rescued without a passing member, when short SV rescue is enabled.
const DefaultMinComponentSize = 3

// LinkRescue accumulates rescued breakends for one sample.  Thread compatible.
type LinkRescue struct {
	store            *sv.Store
	minComponentSize int
	rescued          sv.BreakendSet
}

// NewLinkRescue creates a LinkRescue over the breakends of store.
func NewLinkRescue(store *sv.Store, minComponentSize int) *LinkRescue {
	return &LinkRescue{
		store:            store,
		minComponentSize: minComponentSize,
		rescued:          sv.NewBreakendSet(),
	}
}

// component collects the breakends reachable from start along links and SV
// partner edges.  visited is shared between calls.
func (r *LinkRescue) component(links *linkage.LinkStore, start sv.BreakendID, visited sv.BreakendSet) []sv.BreakendID {
	members := []sv.BreakendID{start}
	visited.Add(start)
	for i := 0; i < len(members); i++ {
		id := members[i]
		next := make([]sv.BreakendID, 0, len(links.Links(id))+1)
		for _, l := range links.Links(id) {
			next = append(next, l.Other(id))
		}
		if other := r.store.OtherBreakend(id); other != sv.NoBreakend {
			next = append(next, other)
		}
		for _, n := range next {
			if !visited.Contains(n) {
				visited.Add(n)
				members = append(members, n)
			}
		}
	}
	return members
}

// FindRescuedBreakends walks every connected component of links.  A component
// with at least one passing breakend has all its filtered breakends rescued.
// If rescueShortSVs is set, a component with no passing breakend is rescued
// when it has more breakends than the minimum component size.
func (r *LinkRescue) FindRescuedBreakends(links *linkage.LinkStore, filters *sv.FilterCache, rescueShortSVs bool) {
	visited := sv.NewBreakendSet()
	for _, id := range links.Breakends() {
		if visited.Contains(id) {
			continue
		}
		members := r.component(links, id, visited)
		passing := false
		for _, m := range members {
			if filters.Passing(m) {
				passing = true
				break
			}
		}
		if !passing && !(rescueShortSVs && len(members) > r.minComponentSize) {
			continue
		}
		n := 0
		for _, m := range members {
			if !filters.Passing(m) && !r.rescued.Contains(m) {
				r.rescued.Add(m)
				n++
			}
		}
		if n > 0 {
			log.Debug.Printf("rescue: %d of %d breakends in component of %v",
				n, len(members), r.store.Breakend(id))
		}
	}
}

// FindRescuedDsbLineInsertions rescues both SVs of a DSB link whose breakends
// are both LINE insertion candidates with a combined quality above minQual.
func (r *LinkRescue) FindRescuedDsbLineInsertions(links *linkage.LinkStore, filters *sv.FilterCache, minQual float64) {
	for _, id := range links.Breakends() {
		for _, l := range links.Links(id) {
			if l.Type != linkage.Dsb || l.First > l.Second {
				continue
			}
			a, b := r.store.Breakend(l.First), r.store.Breakend(l.Second)
			if !a.LineInsertion || !b.LineInsertion {
				continue
			}
			if filters.Passing(a.ID) && filters.Passing(b.ID) {
				continue
			}
			if a.Qual+b.Qual <= minQual {
				continue
			}
			log.Debug.Printf("rescue: line insertion %v", l)
			r.rescueSv(l.First, filters)
			r.rescueSv(l.Second, filters)
		}
	}
}

func (r *LinkRescue) rescueSv(id sv.BreakendID, filters *sv.FilterCache) {
	for _, m := range r.store.Sv(r.store.SvOf(id)).Breakends() {
		if !filters.Passing(m) {
			r.rescued.Add(m)
		}
	}
}

// RescuedBreakends lists the filtered breakends rescued so far.  The caller
// must not modify the result.
func (r *LinkRescue) RescuedBreakends() sv.BreakendSet { return r.rescued }

// Clear forgets every rescue.
func (r *LinkRescue) Clear() { r.rescued = sv.NewBreakendSet() }
