package linkage

import (
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/svtools/sv"
)

// AlternatePath is one indirect connection between the two breakends of an SV.
// Links is ordered from Start towards End; Pair links cross the SVs the path
// goes through.  Several paths for the same SV are alternatives to each
// other, not parts of one route.
type AlternatePath struct {
	// Start is the breakend the search started from.
	Start sv.BreakendID
	// End is Start's partner.
	End   sv.BreakendID
	Links []Link
}

// PathSvs lists the SVs the path goes through, in path order.
func (p AlternatePath) PathSvs(store *sv.Store) []sv.SvID {
	var svs []sv.SvID
	for _, l := range p.Links {
		if l.Type == Pair {
			svs = append(svs, store.SvOf(l.First))
		}
	}
	return svs
}

// HopLinks lists the links joining consecutive SVs of the path.
func (p AlternatePath) HopLinks() []Link {
	var hops []Link
	for _, l := range p.Links {
		if l.Type != Pair {
			hops = append(hops, l)
		}
	}
	return hops
}

// PathString renders the path as the names of its SVs joined by the hop link
// IDs, e.g. "sv2-asm1-sv5".
func (p AlternatePath) PathString(store *sv.Store) string {
	var parts []string
	for _, l := range p.Links {
		if l.Type == Pair {
			parts = append(parts, store.Sv(store.SvOf(l.First)).Name)
		} else {
			parts = append(parts, l.ID)
		}
	}
	return strings.Join(parts, "-")
}

// FindAlternatePaths searches, for every paired SV of store, for paths from
// its start breakend to its end breakend over links.  At most
// opts.MaxPathsPerSv paths, best first, are kept per SV.
func FindAlternatePaths(store *sv.Store, links *LinkStore, opts TransitiveOpts) []AlternatePath {
	finder := NewTransitiveLinkFinder(store, links, opts)
	var paths []AlternatePath
	for i := 0; i < store.NumSvs(); i++ {
		data := store.Sv(sv.SvID(i))
		if data.IsSgl() {
			continue
		}
		found := finder.FindPaths(data.Start)
		if len(found) > opts.MaxPathsPerSv {
			found = found[:opts.MaxPathsPerSv]
		}
		for _, p := range found {
			log.Debug.Printf("alternate path for %s: %s", data.Name, p.PathString(store))
		}
		paths = append(paths, found...)
	}
	return paths
}

// PathLinkStore collects the hop links of paths into a new store.
func PathLinkStore(paths []AlternatePath) *LinkStore {
	links := NewLinkStore()
	for _, p := range paths {
		for _, l := range p.HopLinks() {
			links.Add(l)
		}
	}
	return links
}
