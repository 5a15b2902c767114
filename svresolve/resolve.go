// Package svresolve runs the duplicate and rescue resolution phases over the
// structural-variant calls of one or more samples.
package svresolve

import (
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/svtools/dedup"
	"github.com/grailbio/svtools/linkage"
	"github.com/grailbio/svtools/pon"
	"github.com/grailbio/svtools/realign"
	"github.com/grailbio/svtools/rescue"
	"github.com/grailbio/svtools/sv"
)

// Sample is the parsed calls of one sample.
type Sample struct {
	Name  string
	Store *sv.Store
	// Filters lists the soft filters each breakend failed.  If nil, it is
	// seeded from the filters recorded on the breakends.
	Filters *sv.FilterCache
}

// Result is the outcome of resolving one sample.  The sample's Store holds the
// realigned breakends once Resolve returns.
type Result struct {
	Sample string
	// Err is set if the sample failed; the other fields are then unset.
	Err error

	AssemblyLinks *linkage.LinkStore
	DsbLinks      *linkage.LinkStore
	// PathLinks holds the hop links of Paths.
	PathLinks *linkage.LinkStore
	Paths     []linkage.AlternatePath

	Duplicates    sv.BreakendSet
	DuplicateSgls sv.BreakendSet
	// DuplicateOf maps each duplicate breakend to the SV it lost to.
	DuplicateOf map[sv.BreakendID]sv.SvID
	// Rescued lists the filtered, non-duplicate breakends to reinstate.
	Rescued sv.BreakendSet
	// PonCounts maps each SV matching the panel of normals to its hit count.
	PonCounts map[sv.SvID]int

	Stats Stats
}

// IsDuplicate checks if breakend id was marked duplicate.
func (r *Result) IsDuplicate(id sv.BreakendID) bool {
	return r.Duplicates.Contains(id) || r.DuplicateSgls.Contains(id)
}

// Resolve runs every phase over one sample, in order: assembly links, DSB
// links, alternate paths, duplicate SVs, DSB links again without the
// duplicates, duplicate singles, link rescue, LINE insertion rescue, PON
// matching and realignment.  ponCache may be nil.  Resolve replaces the
// breakends of sample.Store with their realigned values.
func Resolve(sample Sample, ponCache *pon.Cache, opts Opts) (Result, error) {
	store := sample.Store
	if store == nil {
		return Result{}, errors.E(errors.Invalid, "sample", sample.Name, "has no store")
	}
	filters := sample.Filters
	if filters == nil {
		filters = sv.NewFilterCacheFromStore(store)
	}
	res := Result{Sample: sample.Name}

	res.AssemblyLinks = linkage.BuildAssemblyLinks(store)
	pathGraph := linkage.Merged(res.AssemblyLinks,
		linkage.FindDsbLinks(store, res.AssemblyLinks, nil, opts.dsbOpts()))
	res.Paths = linkage.FindAlternatePaths(store, pathGraph, opts.transitiveOpts())
	res.PathLinks = linkage.PathLinkStore(res.Paths)

	dups := dedup.NewDuplicateFinder(store, filters)
	dups.FindDuplicateSVs(res.Paths)
	res.DsbLinks = linkage.FindDsbLinks(store, res.AssemblyLinks, dups.DuplicateBreakends(), opts.dsbOpts())
	linked := linkage.Merged(res.AssemblyLinks, res.DsbLinks)
	if err := linked.Validate(store); err != nil {
		return Result{}, errors.E(err, "sample", sample.Name)
	}
	dups.FindDuplicateSingles(linked)
	res.Duplicates = dups.DuplicateBreakends()
	res.DuplicateSgls = dups.DuplicateSglBreakends()
	res.DuplicateOf = map[sv.BreakendID]sv.SvID{}
	for _, set := range []sv.BreakendSet{res.Duplicates, res.DuplicateSgls} {
		for id := range set {
			if w, ok := dups.DuplicateOf(id); ok {
				res.DuplicateOf[id] = w
			}
		}
	}

	rescuer := rescue.NewLinkRescue(store, opts.MinRescueComponentSize)
	rescuer.FindRescuedBreakends(linkage.Merged(linked, res.PathLinks), filters, opts.RescueShortSVs)
	linkRescued := rescuer.RescuedBreakends()
	rescuer.Clear()
	rescuer.FindRescuedDsbLineInsertions(res.DsbLinks, filters, opts.MinLineRescueQual)
	lineRescued := 0
	for id := range rescuer.RescuedBreakends() {
		if !linkRescued.Contains(id) {
			lineRescued++
		}
	}
	res.Rescued = sv.NewBreakendSet()
	for _, set := range []sv.BreakendSet{linkRescued, rescuer.RescuedBreakends(), dups.RescueBreakends()} {
		for id := range set {
			if !filters.Passing(id) && !res.IsDuplicate(id) {
				res.Rescued.Add(id)
			}
		}
	}

	res.PonCounts = map[sv.SvID]int{}
	if ponCache != nil {
		for i := 0; i < store.NumSvs(); i++ {
			id := sv.SvID(i)
			if n := ponCache.PonCount(store, id); n > 0 {
				res.PonCounts[id] = n
			}
		}
	}

	realigner := realign.Realigner{MinInsertLength: opts.MinRealignInsertLength}
	realigned := realigner.RealignStore(store)

	res.Stats = Stats{
		Samples:               1,
		Breakends:             store.NumBreakends(),
		AssemblyLinks:         res.AssemblyLinks.Len(),
		DsbLinks:              res.DsbLinks.Len(),
		AlternatePaths:        len(res.Paths),
		DuplicateBreakends:    len(res.Duplicates),
		DuplicateSglBreakends: len(res.DuplicateSgls),
		RescuedBreakends:      len(res.Rescued),
		LineRescuedBreakends:  lineRescued,
		PonMatches:            len(res.PonCounts),
		RealignedBreakends:    realigned,
	}
	for i := 0; i < store.NumSvs(); i++ {
		if store.Sv(sv.SvID(i)).IsSgl() {
			res.Stats.Sgls++
		} else {
			res.Stats.Svs++
		}
	}
	for _, id := range res.PathLinks.Breakends() {
		for _, l := range res.PathLinks.Links(id) {
			if l.Type == linkage.Transitive && l.First < l.Second {
				res.Stats.TransitiveLinks++
			}
		}
	}
	log.Printf("%s: Stats: %+v", sample.Name, res.Stats)
	return res, nil
}

// resolveSafely runs Resolve, turning a panic into an error.
func resolveSafely(sample Sample, ponCache *pon.Cache, opts Opts) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.E(fmt.Sprintf("sample %s: panic: %v", sample.Name, r))
		}
	}()
	return Resolve(sample, ponCache, opts)
}

// ResolveAll resolves samples in parallel, up to opts.Parallelism at a time.
// ponCache is shared read-only between samples and may be nil.  A sample that
// fails, or panics, gets its Result.Err set and does not affect the others.
// The returned Stats sums the stats of every sample.
func ResolveAll(ctx context.Context, samples []Sample, ponCache *pon.Cache, opts Opts) ([]Result, Stats) {
	results := make([]Result, len(samples))
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}
	_ = traverse.Limit(parallelism).Each(len(samples), func(i int) error {
		if err := ctx.Err(); err != nil {
			results[i] = Result{Sample: samples[i].Name, Err: err}
			return nil
		}
		res, err := resolveSafely(samples[i], ponCache, opts)
		if err != nil {
			log.Error.Printf("%s: %v", samples[i].Name, err)
			res = Result{Sample: samples[i].Name, Err: err}
		}
		results[i] = res
		return nil
	})
	var stats Stats
	for _, res := range results {
		if res.Err != nil {
			stats.FailedSamples++
			continue
		}
		stats = stats.Merge(res.Stats)
	}
	log.Printf("Stats: %+v", stats)
	return results, stats
}
