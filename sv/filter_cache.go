package sv

// FilterCache records the soft filters each breakend failed.  It is produced
// by filter evaluation outside this package and consumed as a lookup; a
// breakend with no entry passes.
type FilterCache struct {
	filters map[BreakendID][]string
}

// NewFilterCache creates an empty cache: every breakend passes.
func NewFilterCache() *FilterCache {
	return &FilterCache{filters: map[BreakendID][]string{}}
}

// NewFilterCacheFromStore creates a cache seeded with the filters recorded on
// each breakend of s.
func NewFilterCacheFromStore(s *Store) *FilterCache {
	c := NewFilterCache()
	for i := range s.breakends {
		for _, f := range s.breakends[i].Filters {
			c.Add(BreakendID(i), f)
		}
	}
	return c
}

// Add records that breakend id failed filter.
func (c *FilterCache) Add(id BreakendID, filter string) {
	for _, f := range c.filters[id] {
		if f == filter {
			return
		}
	}
	c.filters[id] = append(c.filters[id], filter)
}

// Filters lists the filters breakend id failed.
func (c *FilterCache) Filters(id BreakendID) []string { return c.filters[id] }

// Passing checks if breakend id failed no filter.
func (c *FilterCache) Passing(id BreakendID) bool { return len(c.filters[id]) == 0 }

// SvPassing checks if every breakend of SV id passes.
func (c *FilterCache) SvPassing(s *Store, id SvID) bool {
	for _, b := range s.Sv(id).Breakends() {
		if !c.Passing(b) {
			return false
		}
	}
	return true
}
