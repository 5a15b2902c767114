package main

// This file reads breakend TSV files into sv.Stores and writes the per-SV
// report.

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/svtools/interval"
	"github.com/grailbio/svtools/sv"
	"github.com/grailbio/svtools/svresolve"
)

// breakendRow is one line of a breakend TSV file.  The one or two rows of an
// SV share the SV column.
type breakendRow struct {
	Sv       string  `tsv:"SV"`
	Chrom    string  `tsv:"CHROM"`
	Pos      int     `tsv:"POS"`
	Orient   string  `tsv:"ORIENT"`
	CIStart  int     `tsv:"CI_START"`
	CIEnd    int     `tsv:"CI_END"`
	HomStart int     `tsv:"HOM_START"`
	HomEnd   int     `tsv:"HOM_END"`
	Qual     float64 `tsv:"QUAL"`
	// Imprecise and Line are "1" or "0".
	Imprecise string `tsv:"IMPRECISE"`
	Line      string `tsv:"LINE"`
	// Filter is "PASS", ".", or a ';'-separated list of filter names.
	Filter string `tsv:"FILTER"`
	// Assemblies is "." or a ','-separated list of "id:reads".
	Assemblies string `tsv:"ASSEMBLIES"`
	// InsertSeq is "." when nothing is inserted.
	InsertSeq string `tsv:"INSSEQ"`
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "1", "true":
		return true, nil
	case "0", "false", ".", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid flag value '%s'", s)
}

func parseFilters(s string) []string {
	if s == "PASS" || s == "." || s == "" {
		return nil
	}
	return strings.Split(s, ";")
}

func parseAssemblies(s string) ([]sv.AssemblyInfo, error) {
	if s == "." || s == "" {
		return nil, nil
	}
	var asms []sv.AssemblyInfo
	for _, field := range strings.Split(s, ",") {
		colon := strings.LastIndexByte(field, ':')
		if colon <= 0 {
			return nil, fmt.Errorf("invalid assembly '%s'", field)
		}
		reads, err := strconv.Atoi(field[colon+1:])
		if err != nil {
			return nil, fmt.Errorf("invalid assembly '%s': %v", field, err)
		}
		asms = append(asms, sv.AssemblyInfo{ID: field[:colon], SupportingReads: reads})
	}
	return asms, nil
}

func (row *breakendRow) breakend() (b sv.Breakend, err error) {
	b = sv.Breakend{
		Chrom:    row.Chrom,
		Position: row.Pos,
		Qual:     row.Qual,
		Filters:  parseFilters(row.Filter),
	}
	if row.CIStart > row.CIEnd || row.HomStart > row.HomEnd {
		return b, fmt.Errorf("inverted interval")
	}
	b.ConfidenceInterval = interval.Interval{Start: row.CIStart, End: row.CIEnd}
	b.InexactHomology = interval.Interval{Start: row.HomStart, End: row.HomEnd}
	if b.Orient, err = sv.ParseOrientation(row.Orient); err != nil {
		return
	}
	if b.Imprecise, err = parseFlag(row.Imprecise); err != nil {
		return
	}
	if b.LineInsertion, err = parseFlag(row.Line); err != nil {
		return
	}
	b.Assemblies, err = parseAssemblies(row.Assemblies)
	return
}

// sampleName derives the sample name from the file name, e.g. "s1" for
// "dir/s1.tsv.gz".
func sampleName(path string) string {
	name := filepath.Base(path)
	for _, ext := range []string{".gz", ".zst", ".tsv"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// readSample reads the breakend TSV file at path.  A record that cannot be
// added to the store is logged and skipped.
func readSample(ctx context.Context, path string) (sample svresolve.Sample, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return sample, errors.E(err, "open", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	var inr io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(inr, in.Name()); u != nil {
		inr = u
	}
	r := tsv.NewReader(bufio.NewReaderSize(inr, 64<<10))
	r.HasHeaderRow = true
	r.UseHeaderNames = true
	r.Comment = '#'

	// rec counts data rows; comment lines are not counted.
	type svRows struct {
		rows []breakendRow
		rec  int
	}
	var (
		order  []string
		byName = map[string]*svRows{}
	)
	for rec := 1; ; rec++ {
		var row breakendRow
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return sample, errors.E(err, "read", fmt.Sprintf("%s: record %d", path, rec))
		}
		g := byName[row.Sv]
		if g == nil {
			g = &svRows{rec: rec}
			byName[row.Sv] = g
			order = append(order, row.Sv)
		}
		g.rows = append(g.rows, row)
	}

	sample = svresolve.Sample{Name: sampleName(path), Store: sv.NewStore()}
	skipped := 0
	for _, name := range order {
		g := byName[name]
		if err := addRecord(sample.Store, name, g.rows); err != nil {
			log.Error.Printf("%s: record %d: skipping SV %s: %v", path, g.rec, name, err)
			skipped++
		}
	}
	log.Printf("%s: read %d SVs, %d breakends, skipped %d SVs",
		path, sample.Store.NumSvs(), sample.Store.NumBreakends(), skipped)
	return sample, nil
}

func addRecord(store *sv.Store, name string, rows []breakendRow) error {
	if len(rows) > 2 {
		return errors.E(errors.Invalid, fmt.Sprintf("%d breakends", len(rows)))
	}
	rec := sv.Record{Name: name}
	if seq := rows[0].InsertSeq; seq != "." {
		rec.InsertSequence = seq
	}
	var err error
	if rec.Start, err = rows[0].breakend(); err != nil {
		return errors.E(errors.Invalid, err)
	}
	if len(rows) == 2 {
		end, err := rows[1].breakend()
		if err != nil {
			return errors.E(errors.Invalid, err)
		}
		rec.End = &end
	}
	_, err = store.AddSv(rec)
	return err
}

const reportHeader = "SAMPLE\tSV\tTYPE\tCHROM1\tPOS1\tORIENT1\tCHROM2\tPOS2\tORIENT2\tQUAL\tFILTER\tDUPLICATE_OF\tRESCUED\tPON_COUNT\tREALIGNED"

func flagString(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// svFilter is the final filter column of an SV: "DEDUP" for a duplicate,
// "PASS" for a rescued or passing SV, otherwise its original filters.
func svFilter(store *sv.Store, filters *sv.FilterCache, res *svresolve.Result, id sv.SvID) string {
	data := store.Sv(id)
	var out []string
	for _, b := range data.Breakends() {
		if res.IsDuplicate(b) {
			return "DEDUP"
		}
		if res.Rescued.Contains(b) {
			continue
		}
		for _, f := range filters.Filters(b) {
			if !containsString(out, f) {
				out = append(out, f)
			}
		}
	}
	if len(out) == 0 {
		return "PASS"
	}
	return strings.Join(out, ";")
}

func containsString(a []string, s string) bool {
	for _, x := range a {
		if x == s {
			return true
		}
	}
	return false
}

// writeReport writes one row per SV of every successfully resolved sample.
func writeReport(ctx context.Context, path string, samples []svresolve.Sample, results []svresolve.Result) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := tsv.NewWriter(out.Writer(ctx))
	w.WriteString(reportHeader)
	if err := w.EndLine(); err != nil {
		return err
	}
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			continue
		}
		store := samples[i].Store
		filters := samples[i].Filters
		if filters == nil {
			filters = sv.NewFilterCacheFromStore(store)
		}
		for j := 0; j < store.NumSvs(); j++ {
			id := sv.SvID(j)
			data := store.Sv(id)
			w.WriteString(res.Sample)
			w.WriteString(data.Name)
			w.WriteString(data.Type.String())
			realigned := false
			for _, bid := range []sv.BreakendID{data.Start, data.End} {
				if bid == sv.NoBreakend {
					w.WriteString(".")
					w.WriteString(".")
					w.WriteString(".")
					continue
				}
				b := store.Breakend(bid)
				w.WriteString(b.Chrom)
				w.WriteString(strconv.Itoa(b.Position))
				w.WriteString(b.Orient.String())
				realigned = realigned || b.Realigned()
			}
			w.WriteString(strconv.FormatFloat(store.SvQual(id), 'f', -1, 64))
			w.WriteString(svFilter(store, filters, res, id))
			if winner, ok := res.DuplicateOf[data.Start]; ok {
				w.WriteString(store.Sv(winner).Name)
			} else {
				w.WriteString(".")
			}
			w.WriteString(flagString(res.Rescued.Contains(data.Start) ||
				(!data.IsSgl() && res.Rescued.Contains(data.End))))
			w.WriteString(strconv.Itoa(res.PonCounts[id]))
			w.WriteString(flagString(realigned))
			if err := w.EndLine(); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}
