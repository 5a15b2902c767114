package pon

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/svtools/interval"
	"github.com/grailbio/svtools/sv"
)

// bedpeRecord is one line of a BEDPE file.  Coordinates are 0-based,
// half-open.
type bedpeRecord struct {
	Chrom1  string
	Start1  int
	End1    int
	Chrom2  string
	Start2  int
	End2    int
	Name    string
	Score   string
	Strand1 string
	Strand2 string
}

// bedRecord is one line of a 6-column BED file.
type bedRecord struct {
	Chrom  string
	Start  int
	End    int
	Name   string
	Score  string
	Strand string
}

// openTSV opens path, decompressing it if its name says so.
func openTSV(ctx context.Context, path string) (file.File, *tsv.Reader, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, errors.E(err, "open", path)
	}
	var inr io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(inr, in.Name()); u != nil {
		inr = u
	}
	r := tsv.NewReader(bufio.NewReaderSize(inr, 64<<10))
	r.Comment = '#'
	r.LazyQuotes = true
	return in, r, nil
}

// where names the n'th data record of path.  Comment lines are not counted.
func where(path string, n int) string { return fmt.Sprintf("%s: record %d", path, n) }

// parseScore reads a BED score column as a hit count.  "." counts once.
func parseScore(s string) (int, error) {
	if s == "." || s == "" {
		return 1, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// parseStrand maps a BED strand to a breakend orientation.
func parseStrand(s string) (sv.Orientation, error) {
	return sv.ParseOrientation(s)
}

// bedInterval converts a 0-based half-open BED range to a 1-based closed
// interval.
func bedInterval(start, end int) (interval.Interval, error) {
	if end <= start || start < 0 {
		return interval.Zero, errors.E(errors.Invalid, fmt.Sprintf("empty range [%d,%d)", start, end))
	}
	return interval.Interval{Start: start + 1, End: end}, nil
}

// ReadSvRegions adds the paired entries of the BEDPE file at path to c.
func (c *Cache) ReadSvRegions(ctx context.Context, path string) (err error) {
	in, r, err := openTSV(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, in, &err)
	var rec bedpeRecord
	n := 0
	for n := 1; ; n++ {
		if err := r.Read(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return errors.E(err, "read", where(path, n))
		}
		region := SvRegion{Chrom1: rec.Chrom1, Chrom2: rec.Chrom2}
		if region.Region1, err = bedInterval(rec.Start1, rec.End1); err != nil {
			return errors.E(err, where(path, n))
		}
		if region.Region2, err = bedInterval(rec.Start2, rec.End2); err != nil {
			return errors.E(err, where(path, n))
		}
		if region.Orient1, err = parseStrand(rec.Strand1); err != nil {
			return errors.E(errors.Invalid, err, where(path, n))
		}
		if region.Orient2, err = parseStrand(rec.Strand2); err != nil {
			return errors.E(errors.Invalid, err, where(path, n))
		}
		if region.Count, err = parseScore(rec.Score); err != nil {
			return errors.E(errors.Invalid, err, where(path, n))
		}
		c.AddSvRegion(region)
		n++
	}
	log.Printf("%s: read %d paired PON regions", path, n)
	return nil
}

// ReadSglRegions adds the single-breakend entries of the BED file at path to
// c.
func (c *Cache) ReadSglRegions(ctx context.Context, path string) (err error) {
	in, r, err := openTSV(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, in, &err)
	var rec bedRecord
	n := 0
	for n := 1; ; n++ {
		if err := r.Read(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return errors.E(err, "read", where(path, n))
		}
		region := SglRegion{Chrom: rec.Chrom}
		if region.Region, err = bedInterval(rec.Start, rec.End); err != nil {
			return errors.E(err, where(path, n))
		}
		if region.Orient, err = parseStrand(rec.Strand); err != nil {
			return errors.E(errors.Invalid, err, where(path, n))
		}
		if region.Count, err = parseScore(rec.Score); err != nil {
			return errors.E(errors.Invalid, err, where(path, n))
		}
		c.AddSglRegion(region)
		n++
	}
	log.Printf("%s: read %d single PON regions", path, n)
	return nil
}
