package linkage

import (
	"testing"

	"github.com/grailbio/svtools/sv/svtest"
	"github.com/grailbio/testutil/expect"
)

func TestAssemblyLinksFacing(t *testing.T) {
	bld := svtest.NewBuilder()
	a := bld.Del("chr1", 100, 500, svtest.EndAssembly("asm1", 10), svtest.EndAssembly("asm2", 3))
	b := bld.Del("chr1", 600, 1000, svtest.StartAssembly("asm1", 4), svtest.StartAssembly("asm2", 8))

	links := BuildAssemblyLinks(bld.Store)
	expect.EQ(t, links.Len(), 1)
	expect.EQ(t, links.Links(bld.End(a)), []Link{{
		Type:            Assembly,
		ID:              "asm0",
		AssemblyID:      "asm1",
		SupportingReads: 4,
		First:           bld.End(a),
		Second:          bld.Start(b),
	}})
	expect.True(t, links.Linked(bld.Start(b), bld.End(a)))
}

func TestAssemblyLinksNone(t *testing.T) {
	bld := svtest.NewBuilder()
	// The two ends of one SV share an assembly.
	bld.Del("chr1", 100, 500, svtest.StartAssembly("self", 5), svtest.EndAssembly("self", 5))
	// Same orientation: not facing.
	bld.Del("chr2", 2000, 3000, svtest.StartAssembly("same", 5))
	bld.Del("chr2", 4000, 5000, svtest.StartAssembly("same", 5))
	// No mate.
	bld.Sgl("chr3", 100, 1, svtest.StartAssembly("lonely", 5))
	// No assembly metadata.
	bld.Del("chr4", 100, 500)
	bld.Del("chr4", 510, 900)

	expect.EQ(t, BuildAssemblyLinks(bld.Store).Len(), 0)
}

func TestAssemblyLinksSgl(t *testing.T) {
	bld := svtest.NewBuilder()
	d := bld.Del("chr1", 100, 500, svtest.EndAssembly("a", 6))
	s := bld.Sgl("chr1", 520, 1, svtest.StartAssembly("a", 9))

	links := BuildAssemblyLinks(bld.Store)
	expect.EQ(t, links.Len(), 1)
	expect.True(t, links.Linked(bld.End(d), bld.Start(s)))
	expect.EQ(t, links.Links(bld.Start(s))[0].SupportingReads, 6)
}
