package linkage

import (
	"testing"

	"github.com/grailbio/svtools/sv"
	"github.com/grailbio/svtools/sv/svtest"
	"github.com/grailbio/testutil/expect"
)

func TestFindPathsDuplicateCall(t *testing.T) {
	bld := svtest.NewBuilder()
	a := bld.Del("chr1", 100, 1000, svtest.Imprecise())
	b := bld.Del("chr1", 100, 1000)

	f := NewTransitiveLinkFinder(bld.Store, nil, DefaultTransitiveOpts)
	paths := f.FindPaths(bld.Start(a))
	expect.EQ(t, paths, []AlternatePath{{
		Start: bld.Start(a),
		End:   bld.End(a),
		Links: []Link{{Type: Pair, ID: "PAIR", First: bld.Start(b), Second: bld.End(b)}},
	}})
	expect.EQ(t, paths[0].PathSvs(bld.Store), []sv.SvID{b})
	expect.EQ(t, len(paths[0].HopLinks()), 0)
}

// templatedInsertion builds a deletion chr1:100-2000 whose junction is also
// explained by chr1:100 -> chr5:500 followed by chr5:800 -> chr1:2000.
func templatedInsertion(opts ...svtest.Option) (*svtest.Builder, sv.SvID) {
	bld := svtest.NewBuilder()
	target := bld.Del("chr1", 100, 2000)
	bld.Sv("chr1", 100, sv.PosOrient, "chr5", 500, sv.NegOrient, opts...)
	bld.Sv("chr5", 800, sv.PosOrient, "chr1", 2000, sv.NegOrient)
	return bld, target
}

func TestFindPathsTransitiveHop(t *testing.T) {
	bld, target := templatedInsertion()
	f := NewTransitiveLinkFinder(bld.Store, NewLinkStore(), DefaultTransitiveOpts)
	paths := f.FindPaths(bld.Start(target))
	expect.EQ(t, len(paths), 1)
	expect.EQ(t, paths[0].PathString(bld.Store), "sv1-trs3_4-sv2")
	expect.EQ(t, paths[0].HopLinks(), []Link{{Type: Transitive, ID: "trs3_4", First: 3, Second: 4}})
	expect.EQ(t, f.FindTransitiveLinks(bld.Start(target)), paths[0].Links)

	// The templated segment is 300 bases long.
	opts := DefaultTransitiveOpts
	opts.MaxTransitiveDistance = 299
	f = NewTransitiveLinkFinder(bld.Store, NewLinkStore(), opts)
	expect.EQ(t, len(f.FindPaths(bld.Start(target))), 0)
}

func TestFindPathsAssemblyHop(t *testing.T) {
	bld := svtest.NewBuilder()
	target := bld.Del("chr1", 100, 2000)
	bld.Sv("chr1", 100, sv.PosOrient, "chr5", 500, sv.NegOrient, svtest.EndAssembly("a1", 5))
	bld.Sv("chr5", 800, sv.PosOrient, "chr1", 2000, sv.NegOrient, svtest.StartAssembly("a1", 7))
	links := BuildAssemblyLinks(bld.Store)

	f := NewTransitiveLinkFinder(bld.Store, links, DefaultTransitiveOpts)
	paths := f.FindPaths(bld.Start(target))
	expect.EQ(t, len(paths), 1)
	expect.EQ(t, paths[0].PathString(bld.Store), "sv1-asm0-sv2")
	expect.EQ(t, paths[0].PathSvs(bld.Store), []sv.SvID{1, 2})

	// No other SV has a breakend at chr5:800.
	expect.EQ(t, len(f.FindPaths(bld.Start(2))), 0)
	// A single breakend has no partner to reach.
	s := bld.Sgl("chr1", 100, sv.PosOrient)
	expect.EQ(t, len(f.FindPaths(bld.Start(s))), 0)
}

func TestFindPathsAssemblyContradiction(t *testing.T) {
	bld := svtest.NewBuilder()
	target := bld.Del("chr1", 100, 2000)
	bld.Sv("chr1", 100, sv.PosOrient, "chr5", 500, sv.NegOrient, svtest.EndAssembly("a1", 5))
	bld.Sv("chr5", 800, sv.PosOrient, "chr1", 2000, sv.NegOrient)
	// chr5:500 is assembled to chr5:520, so the unassembled hop to chr5:800
	// is not allowed.
	bld.Sv("chr5", 520, sv.PosOrient, "chr9", 100, sv.NegOrient, svtest.StartAssembly("a1", 5))
	links := BuildAssemblyLinks(bld.Store)
	expect.EQ(t, links.Len(), 1)

	f := NewTransitiveLinkFinder(bld.Store, links, DefaultTransitiveOpts)
	expect.EQ(t, len(f.FindPaths(bld.Start(target))), 0)
}

func TestFindPathsBounds(t *testing.T) {
	bld, target := templatedInsertion()

	opts := DefaultTransitiveOpts
	opts.MaxPathLength = 1
	f := NewTransitiveLinkFinder(bld.Store, nil, opts)
	expect.EQ(t, len(f.FindPaths(bld.Start(target))), 0)

	opts = DefaultTransitiveOpts
	opts.MaxExploredNodes = 1
	f = NewTransitiveLinkFinder(bld.Store, nil, opts)
	expect.EQ(t, len(f.FindPaths(bld.Start(target))), 0)
}

func TestFindPathsRanking(t *testing.T) {
	bld := svtest.NewBuilder()
	target := bld.Del("chr1", 100, 1000)
	bld.Del("chr1", 100, 1000, svtest.Qual(50))
	best := bld.Del("chr1", 100, 1000, svtest.Qual(900))

	f := NewTransitiveLinkFinder(bld.Store, nil, DefaultTransitiveOpts)
	paths := f.FindPaths(bld.Start(target))
	expect.EQ(t, len(paths), 2)
	expect.EQ(t, paths[0].PathSvs(bld.Store), []sv.SvID{best})
}

func TestFindAlternatePaths(t *testing.T) {
	bld := svtest.NewBuilder()
	bld.Del("chr1", 100, 2000)
	bld.Sv("chr1", 100, sv.PosOrient, "chr5", 500, sv.NegOrient, svtest.EndAssembly("a1", 5))
	bld.Sv("chr5", 800, sv.PosOrient, "chr1", 2000, sv.NegOrient, svtest.StartAssembly("a1", 7))
	bld.Sgl("chr7", 100, sv.NegOrient)
	links := BuildAssemblyLinks(bld.Store)

	paths := FindAlternatePaths(bld.Store, links, DefaultTransitiveOpts)
	expect.EQ(t, len(paths), 1)
	expect.EQ(t, paths[0].Start, bld.Start(0))

	pathLinks := PathLinkStore(paths)
	expect.EQ(t, pathLinks.Len(), 1)
	expect.True(t, pathLinks.HasLinkOfType(3, Assembly))
}

func TestFindPathsAssemblyRing(t *testing.T) {
	bld := svtest.NewBuilder()
	target := bld.Del("chr1", 100, 2000)
	// Three SVs whose assemblies join them head to tail in a ring:
	// chr1:100 -> chr5:500 ~ chr5:480 -> chr6:100 ~ chr6:80 -> chr1:150 ~ chr1:100.
	bld.Sv("chr1", 100, sv.PosOrient, "chr5", 500, sv.NegOrient,
		svtest.StartAssembly("a3", 4), svtest.EndAssembly("a1", 4))
	bld.Sv("chr5", 480, sv.PosOrient, "chr6", 100, sv.NegOrient,
		svtest.StartAssembly("a1", 4), svtest.EndAssembly("a2", 4))
	bld.Sv("chr6", 80, sv.PosOrient, "chr1", 150, sv.NegOrient,
		svtest.StartAssembly("a2", 4), svtest.EndAssembly("a3", 4))
	links := BuildAssemblyLinks(bld.Store)
	expect.EQ(t, links.Len(), 3)

	opts := DefaultTransitiveOpts
	opts.MaxPathLength = 50
	opts.MaxExploredNodes = 1000000
	f := NewTransitiveLinkFinder(bld.Store, links, opts)
	expect.EQ(t, len(f.FindPaths(bld.Start(target))), 0)

	for i := 0; i < bld.Store.NumBreakends(); i++ {
		from := sv.BreakendID(i)
		for _, p := range f.FindPaths(from) {
			seen := sv.NewBreakendSet(p.Start)
			for _, l := range p.Links {
				if l.Type != Pair {
					continue
				}
				for _, id := range []sv.BreakendID{l.First, l.Second} {
					expect.False(t, seen.Contains(id), "breakend %d repeated in %s", id, p.PathString(bld.Store))
					seen.Add(id)
				}
			}
		}
	}
	// Searching from every SV also terminates.
	FindAlternatePaths(bld.Store, links, opts)
}
