package rescue

import (
	"fmt"
	"testing"

	"github.com/grailbio/svtools/linkage"
	"github.com/grailbio/svtools/sv"
	"github.com/grailbio/svtools/sv/svtest"
	"github.com/grailbio/testutil/expect"
)

func dsb(links *linkage.LinkStore, a, b sv.BreakendID) {
	links.Add(linkage.Link{Type: linkage.Dsb, ID: fmt.Sprintf("dsb%d_%d", a, b), First: a, Second: b})
}

func TestRescueChain(t *testing.T) {
	const n = 4
	bld := svtest.NewBuilder()
	var filtered []sv.BreakendID
	for i := 0; i < n; i++ {
		filtered = append(filtered, bld.Start(bld.Sgl("chr1", 1000*(i+1), sv.PosOrient, svtest.Filtered("minQual"))))
	}
	pass := bld.Start(bld.Sgl("chr1", 9000, sv.PosOrient))
	links := linkage.NewLinkStore()
	for i := 1; i < n; i++ {
		dsb(links, filtered[i-1], filtered[i])
	}
	dsb(links, filtered[n-1], pass)

	r := NewLinkRescue(bld.Store, DefaultMinComponentSize)
	r.FindRescuedBreakends(links, bld.Filters(), false)
	expect.EQ(t, r.RescuedBreakends().Sorted(), filtered)

	r.Clear()
	expect.EQ(t, len(r.RescuedBreakends()), 0)
}

func TestRescueCycle(t *testing.T) {
	bld := svtest.NewBuilder()
	var ids []sv.BreakendID
	for i := 0; i < 3; i++ {
		ids = append(ids, bld.Start(bld.Sgl("chr1", 1000*(i+1), sv.PosOrient, svtest.Filtered("minQual"))))
	}
	links := linkage.NewLinkStore()
	dsb(links, ids[0], ids[1])
	dsb(links, ids[1], ids[2])
	dsb(links, ids[2], ids[0])
	filters := bld.Filters()

	r := NewLinkRescue(bld.Store, 3)
	r.FindRescuedBreakends(links, filters, false)
	expect.EQ(t, len(r.RescuedBreakends()), 0)

	// A component must be larger than the minimum.
	r.FindRescuedBreakends(links, filters, true)
	expect.EQ(t, len(r.RescuedBreakends()), 0)

	r = NewLinkRescue(bld.Store, 2)
	r.FindRescuedBreakends(links, filters, true)
	expect.EQ(t, r.RescuedBreakends().Sorted(), ids)
}

func TestRescueFollowsPartner(t *testing.T) {
	bld := svtest.NewBuilder()
	del := bld.Del("chr1", 100, 500, svtest.Filtered("minQual"))
	pass := bld.Sgl("chr1", 90, sv.NegOrient)
	other := bld.Del("chr2", 100, 500, svtest.Filtered("minQual"))
	links := linkage.NewLinkStore()
	dsb(links, bld.Start(pass), bld.Start(del))
	dsb(links, bld.Start(other), bld.End(other))

	r := NewLinkRescue(bld.Store, DefaultMinComponentSize)
	r.FindRescuedBreakends(links, bld.Filters(), false)
	expect.EQ(t, r.RescuedBreakends().Sorted(), []sv.BreakendID{bld.Start(del), bld.End(del)})
}

func TestRescueLineInsertion(t *testing.T) {
	tests := []struct {
		qual   float64
		line   bool
		rescue bool
	}{
		{600, true, true},
		{400, true, false},
		{600, false, false},
	}
	for _, test := range tests {
		bld := svtest.NewBuilder()
		opts := []svtest.Option{svtest.Qual(test.qual), svtest.Filtered("minQual"), svtest.LineInsertion()}
		a := bld.Del("chr1", 100, 500, opts...)
		if !test.line {
			opts = opts[:2]
		}
		b := bld.Del("chr1", 510, 1000, opts...)
		links := linkage.FindDsbLinks(bld.Store, nil, nil, linkage.DefaultDsbOpts)
		expect.EQ(t, links.Len(), 1)

		r := NewLinkRescue(bld.Store, DefaultMinComponentSize)
		r.FindRescuedDsbLineInsertions(links, bld.Filters(), 1000)
		var want []sv.BreakendID
		if test.rescue {
			want = []sv.BreakendID{bld.Start(a), bld.End(a), bld.Start(b), bld.End(b)}
		}
		expect.EQ(t, len(r.RescuedBreakends()), len(want), "case %+v", test)
		for _, id := range want {
			expect.True(t, r.RescuedBreakends().Contains(id), "case %+v: %d", test, id)
		}
	}
}
