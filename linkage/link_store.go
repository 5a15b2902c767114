package linkage

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/svtools/sv"
)

// LinkStore maps each breakend to the links touching it. It is symmetric: a
// link between a and b is listed at a (with First==a) and at b (with
// First==b).
type LinkStore struct {
	links map[sv.BreakendID][]Link
}

// NewLinkStore creates an empty LinkStore.
func NewLinkStore() *LinkStore {
	return &LinkStore{links: map[sv.BreakendID][]Link{}}
}

// Add inserts l at both endpoints.  Self links, and links already present
// with the same type and ID, are dropped.
func (s *LinkStore) Add(l Link) {
	if l.First == l.Second {
		log.Debug.Printf("linkstore: dropping self link %v", l)
		return
	}
	for _, existing := range s.links[l.First] {
		if existing.Type == l.Type && existing.ID == l.ID && existing.Second == l.Second {
			return
		}
	}
	s.links[l.First] = append(s.links[l.First], l)
	s.links[l.Second] = append(s.links[l.Second], l.Reverse())
}

// Links lists the links at id, each with First==id.
func (s *LinkStore) Links(id sv.BreakendID) []Link { return s.links[id] }

// HasLinks checks if any link touches id.
func (s *LinkStore) HasLinks(id sv.BreakendID) bool { return len(s.links[id]) > 0 }

// HasLinkOfType checks if a link of type typ touches id.
func (s *LinkStore) HasLinkOfType(id sv.BreakendID, typ LinkType) bool {
	for _, l := range s.links[id] {
		if l.Type == typ {
			return true
		}
	}
	return false
}

// Linked checks if a link of any type joins a and b.
func (s *LinkStore) Linked(a, b sv.BreakendID) bool {
	for _, l := range s.links[a] {
		if l.Connects(a, b) {
			return true
		}
	}
	return false
}

// Breakends lists every breakend with at least one link, in increasing id
// order.
func (s *LinkStore) Breakends() []sv.BreakendID {
	ids := make([]sv.BreakendID, 0, len(s.links))
	for id, links := range s.links {
		if len(links) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of distinct links.
func (s *LinkStore) Len() int {
	n := 0
	for _, links := range s.links {
		n += len(links)
	}
	return n / 2
}

// Merge adds every link of o to s.
func (s *LinkStore) Merge(o *LinkStore) {
	for _, id := range o.Breakends() {
		for _, l := range o.links[id] {
			if l.First < l.Second {
				s.Add(l)
			}
		}
	}
}

// Validate checks that every link endpoint belongs to store and that no link
// refers to itself.
func (s *LinkStore) Validate(store *sv.Store) error {
	for id, links := range s.links {
		for _, l := range links {
			if l.First != id || l.First == l.Second {
				return errors.E(errors.Invalid, fmt.Sprintf("malformed link %v at breakend %d", l, id))
			}
			if !store.Contains(l.First) || !store.Contains(l.Second) {
				return errors.E(errors.Invalid, fmt.Sprintf("link %v refers to a breakend outside the batch", l))
			}
		}
	}
	return nil
}

// Merged creates a new store holding the links of all the given stores.
func Merged(stores ...*LinkStore) *LinkStore {
	m := NewLinkStore()
	for _, s := range stores {
		if s != nil {
			m.Merge(s)
		}
	}
	return m
}
