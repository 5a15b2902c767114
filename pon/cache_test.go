package pon

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/svtools/interval"
	"github.com/grailbio/svtools/sv"
	"github.com/grailbio/svtools/sv/svtest"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestSvPonCount(t *testing.T) {
	c := NewCache(DefaultMargin)
	for i := 0; i < 5; i++ {
		c.AddSvRegion(SvRegion{
			Chrom1: "chr1", Region1: interval.New(100+1000*i, 110+1000*i), Orient1: sv.PosOrient,
			Chrom2: "chr1", Region2: interval.New(1000+1000*i, 1010+1000*i), Orient2: sv.NegOrient,
			Count: i + 1,
		})
	}
	bld := svtest.NewBuilder()
	hit := bld.Del("chr1", 100, 1005)
	miss := bld.Del("chr1", 100, 500)
	last := bld.Del("chr1", 4095, 5020)
	dup := bld.Dup("chr1", 100, 1005)

	expect.EQ(t, c.PonCount(bld.Store, hit), 1)
	expect.EQ(t, c.PonCount(bld.Store, miss), 0)
	expect.EQ(t, c.PonCount(bld.Store, last), 5)
	// Same coordinates, opposite orientations.
	expect.EQ(t, c.PonCount(bld.Store, dup), 0)
	svs, sgls := c.NumRegions()
	expect.EQ(t, svs, 5)
	expect.EQ(t, sgls, 0)
}

func TestSvPonCountMargin(t *testing.T) {
	c := NewCache(DefaultMargin)
	c.AddSvRegion(SvRegion{
		Chrom1: "chr2", Region1: interval.New(100, 110), Orient1: sv.PosOrient,
		Chrom2: "chr1", Region2: interval.New(1000, 1010), Orient2: sv.NegOrient,
		Count: 7,
	})
	tests := []struct {
		pos  int
		opts []svtest.Option
		want int
	}{
		{130, nil, 7},
		{131, nil, 0},
		{140, []svtest.Option{svtest.Homology(-10, 0)}, 7},
		{80, nil, 7},
		{79, nil, 0},
	}
	for _, test := range tests {
		bld := svtest.NewBuilder()
		// The sides are stored in the opposite order.
		id := bld.Sv("chr1", 1005, sv.NegOrient, "chr2", test.pos, sv.PosOrient, test.opts...)
		expect.EQ(t, c.PonCount(bld.Store, id), test.want, "pos %d", test.pos)
	}
}

func TestSvPonCountOverlappingRegions(t *testing.T) {
	c := NewCache(DefaultMargin)
	c.AddSvRegion(SvRegion{
		Chrom1: "chr1", Region1: interval.New(100, 200), Orient1: sv.PosOrient,
		Chrom2: "chr1", Region2: interval.New(150, 160), Orient2: sv.NegOrient,
		Count: 5,
	})
	bld := svtest.NewBuilder()
	// The positive breakend lies after the negative one, so breakend order and
	// region order disagree.
	inv := bld.Sv("chr1", 190, sv.PosOrient, "chr1", 165, sv.NegOrient)
	flipped := bld.Sv("chr1", 190, sv.NegOrient, "chr1", 165, sv.PosOrient)
	far := bld.Sv("chr1", 190, sv.PosOrient, "chr1", 185, sv.NegOrient)
	expect.EQ(t, c.PonCount(bld.Store, inv), 5)
	expect.EQ(t, c.PonCount(bld.Store, flipped), 0)
	expect.EQ(t, c.PonCount(bld.Store, far), 0)
}

func TestSglPonCount(t *testing.T) {
	c := NewCache(DefaultMargin)
	c.AddSglRegion(SglRegion{Chrom: "chr1", Region: interval.New(100, 110), Orient: sv.PosOrient, Count: 3})
	c.AddSglRegion(SglRegion{Chrom: "chr1", Region: interval.New(50, 400), Orient: sv.PosOrient, Count: 9})
	c.AddSglRegion(SglRegion{Chrom: "chr1", Region: interval.New(2000, 2010), Orient: sv.PosOrient, Count: 4})

	bld := svtest.NewBuilder()
	both := bld.Sgl("chr1", 105, sv.PosOrient)
	wide := bld.Sgl("chr1", 300, sv.PosOrient)
	neg := bld.Sgl("chr1", 105, sv.NegOrient)
	other := bld.Sgl("chr2", 105, sv.PosOrient)
	expect.EQ(t, c.PonCount(bld.Store, both), 9)
	expect.EQ(t, c.PonCount(bld.Store, wide), 9)
	expect.EQ(t, c.PonCount(bld.Store, neg), 0)
	expect.EQ(t, c.PonCount(bld.Store, other), 0)

	// Adding after a query re-sorts the bucket.
	c.AddSglRegion(SglRegion{Chrom: "chr1", Region: interval.New(1, 2), Orient: sv.NegOrient, Count: 1})
	c.AddSglRegion(SglRegion{Chrom: "chr1", Region: interval.New(90, 95), Orient: sv.NegOrient, Count: 2})
	expect.EQ(t, c.PonCount(bld.Store, neg), 2)
}

func testWriteFile(t *testing.T, dir, name, data string) string {
	path := filepath.Join(dir, name)
	assert.NoError(t, ioutil.WriteFile(path, []byte(data), 0600))
	return path
}

func TestReadRegions(t *testing.T) {
	ctx := vcontext.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	bedpe := testWriteFile(t, dir, "pon.bedpe", fmt.Sprintf("%s\n%s\n%s\n",
		"# chrom1\tstart1\tend1\tchrom2\tstart2\tend2\tname\tscore\tstrand1\tstrand2",
		"chr1\t99\t110\tchr1\t999\t1010\t.\t12\t+\t-",
		"chr3\t99\t110\tchr4\t999\t1010\t.\t.\t-\t-"))
	bed := testWriteFile(t, dir, "pon.bed", "chr1\t99\t110\t.\t5\t+\n")

	c := NewCache(DefaultMargin)
	assert.NoError(t, c.ReadSvRegions(ctx, bedpe))
	assert.NoError(t, c.ReadSglRegions(ctx, bed))
	svs, sgls := c.NumRegions()
	expect.EQ(t, svs, 2)
	expect.EQ(t, sgls, 1)

	bld := svtest.NewBuilder()
	del := bld.Del("chr1", 100, 1005)
	inter := bld.Sv("chr3", 105, sv.NegOrient, "chr4", 1000, sv.NegOrient)
	sgl := bld.Sgl("chr1", 100, sv.PosOrient)
	expect.EQ(t, c.PonCount(bld.Store, del), 12)
	expect.EQ(t, c.PonCount(bld.Store, inter), 1)
	expect.EQ(t, c.PonCount(bld.Store, sgl), 5)
}

func TestReadRegionsErrors(t *testing.T) {
	ctx := vcontext.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	c := NewCache(DefaultMargin)
	bad := testWriteFile(t, dir, "bad.bed", "chr1\t99\t110\t.\t5\t?\n")
	assert.HasSubstr(t, c.ReadSglRegions(ctx, bad).Error(), "bad.bed: record 1")
	commented := testWriteFile(t, dir, "commented.bed", "# track\nchr1\t99\t110\t.\t5\t+\n# more\nchr1\t99\t110\t.\t5\t?\n")
	assert.HasSubstr(t, c.ReadSglRegions(ctx, commented).Error(), "commented.bed: record 2")
	empty := testWriteFile(t, dir, "empty.bed", "chr1\t110\t110\t.\t5\t+\n")
	assert.HasSubstr(t, c.ReadSglRegions(ctx, empty).Error(), "empty range")
	expect.NotNil(t, c.ReadSvRegions(ctx, filepath.Join(dir, "missing.bedpe")))
}
