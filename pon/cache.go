package pon

import (
	"sort"
	"sync"

	"github.com/grailbio/svtools/interval"
	"github.com/grailbio/svtools/sv"
)

// DefaultMargin is the default slack, in bases, applied to both the query
// breakend and the stored region.
const DefaultMargin = 10

// SvRegion is a paired panel-of-normals entry.
type SvRegion struct {
	Chrom1  string
	Region1 interval.Interval
	Orient1 sv.Orientation
	Chrom2  string
	Region2 interval.Interval
	Orient2 sv.Orientation
	Count   int
}

// SglRegion is a single-breakend panel-of-normals entry.
type SglRegion struct {
	Chrom  string
	Region interval.Interval
	Orient sv.Orientation
	Count  int
}

type svKey struct {
	chrom1  string
	orient1 sv.Orientation
	chrom2  string
	orient2 sv.Orientation
}

type sglKey struct {
	chrom  string
	orient sv.Orientation
}

// bucket holds the regions of one key.  starts[i] is the first region of
// entry i; the slices are sorted by starts[i].Start once sorted is set.
type bucket struct {
	starts []interval.Interval
	ends   []interval.Interval
	counts []int
	// maxLen is the longest starts[i].
	maxLen int
	sorted bool
}

func (b *bucket) add(start, end interval.Interval, count int) {
	b.starts = append(b.starts, start)
	b.ends = append(b.ends, end)
	b.counts = append(b.counts, count)
	if n := start.Len(); n > b.maxLen {
		b.maxLen = n
	}
	b.sorted = false
}

func (b *bucket) Len() int           { return len(b.starts) }
func (b *bucket) Less(i, j int) bool { return b.starts[i].Start < b.starts[j].Start }
func (b *bucket) Swap(i, j int) {
	b.starts[i], b.starts[j] = b.starts[j], b.starts[i]
	b.ends[i], b.ends[j] = b.ends[j], b.ends[i]
	b.counts[i], b.counts[j] = b.counts[j], b.counts[i]
}

// count returns the largest count of the regions that overlap start, and end
// if end is not nil, after widening each region by margin.
func (b *bucket) count(start interval.Interval, end *interval.Interval, margin int) int {
	lo := interval.SearchStarts(b.starts, start.Start-margin-b.maxLen+1)
	hi := interval.ExpsearchStarts(b.starts, start.End+margin+1, lo)
	best := 0
	for i := lo; i < hi; i++ {
		if !b.starts[i].Widen(margin).Overlaps(start) {
			continue
		}
		if end != nil && !b.ends[i].Widen(margin).Overlaps(*end) {
			continue
		}
		if b.counts[i] > best {
			best = b.counts[i]
		}
	}
	return best
}

// Cache is a panel-of-normals index.  Regions may be added until the first
// query; queries are thread safe.
type Cache struct {
	margin int

	mu     sync.Mutex
	svs    map[svKey]*bucket
	sgls   map[sglKey]*bucket
	sorted bool
}

// NewCache creates an empty cache that applies margin to both sides of every
// comparison.
func NewCache(margin int) *Cache {
	return &Cache{
		margin: margin,
		svs:    map[svKey]*bucket{},
		sgls:   map[sglKey]*bucket{},
	}
}

// canonical orders the two sides of a paired entry by chromosome, then start.
func canonical(chrom1 string, start1 int, chrom2 string, start2 int) bool {
	if chrom1 != chrom2 {
		return chrom1 < chrom2
	}
	return start1 <= start2
}

// AddSvRegion adds a paired entry.
func (c *Cache) AddSvRegion(r SvRegion) {
	if !canonical(r.Chrom1, r.Region1.Start, r.Chrom2, r.Region2.Start) {
		r.Chrom1, r.Region1, r.Orient1, r.Chrom2, r.Region2, r.Orient2 =
			r.Chrom2, r.Region2, r.Orient2, r.Chrom1, r.Region1, r.Orient1
	}
	key := svKey{r.Chrom1, r.Orient1, r.Chrom2, r.Orient2}
	c.mu.Lock()
	b := c.svs[key]
	if b == nil {
		b = &bucket{}
		c.svs[key] = b
	}
	b.add(r.Region1, r.Region2, r.Count)
	c.sorted = false
	c.mu.Unlock()
}

// AddSglRegion adds a single-breakend entry.
func (c *Cache) AddSglRegion(r SglRegion) {
	key := sglKey{r.Chrom, r.Orient}
	c.mu.Lock()
	b := c.sgls[key]
	if b == nil {
		b = &bucket{}
		c.sgls[key] = b
	}
	b.add(r.Region, interval.Zero, r.Count)
	c.sorted = false
	c.mu.Unlock()
}

// NumRegions returns the number of paired and single entries.
func (c *Cache) NumRegions() (svs, sgls int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.svs {
		svs += b.Len()
	}
	for _, b := range c.sgls {
		sgls += b.Len()
	}
	return
}

func (c *Cache) ensureSorted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sorted {
		return
	}
	for _, b := range c.svs {
		if !b.sorted {
			sort.Sort(b)
			b.sorted = true
		}
	}
	for _, b := range c.sgls {
		if !b.sorted {
			sort.Sort(b)
			b.sorted = true
		}
	}
	c.sorted = true
}

// queryRange is the range a breakend can match: its position widened by its
// inexact homology and the margin.
func (c *Cache) queryRange(b *sv.Breakend) interval.Interval {
	return b.InexactHomology.Shift(b.Position).Widen(c.margin)
}

// PonCount returns the hit count of the panel entry matching SV id of store,
// or 0 if there is none.  When several entries match, the largest count is
// returned.  A paired SV needs both breakends to match with the same
// orientations; a single breakend needs its one breakend to match.
func (c *Cache) PonCount(store *sv.Store, id sv.SvID) int {
	data := store.Sv(id)
	if data.IsSgl() {
		return c.SglPonCount(store.Breakend(data.Start))
	}
	return c.SvPonCount(store.Breakend(data.Start), store.Breakend(data.End))
}

// SvPonCount is PonCount for a pair of breakends.  Entries are stored in
// region order, which need not match breakend order when the two regions of
// an entry overlap, so both assignments of the breakends are tried.
func (c *Cache) SvPonCount(b1, b2 *sv.Breakend) int {
	c.ensureSorted()
	if b1.Chrom != b2.Chrom {
		if b1.Chrom > b2.Chrom {
			b1, b2 = b2, b1
		}
		return c.svCount(b1, b2)
	}
	n := c.svCount(b1, b2)
	if n2 := c.svCount(b2, b1); n2 > n {
		n = n2
	}
	return n
}

// svCount matches b1 against the first region and b2 against the second.
func (c *Cache) svCount(b1, b2 *sv.Breakend) int {
	b := c.svs[svKey{b1.Chrom, b1.Orient, b2.Chrom, b2.Orient}]
	if b == nil {
		return 0
	}
	end := c.queryRange(b2)
	return b.count(c.queryRange(b1), &end, c.margin)
}

// SglPonCount is PonCount for a single breakend.
func (c *Cache) SglPonCount(b1 *sv.Breakend) int {
	c.ensureSorted()
	b := c.sgls[sglKey{b1.Chrom, b1.Orient}]
	if b == nil {
		return 0
	}
	return b.count(c.queryRange(b1), nil, c.margin)
}
