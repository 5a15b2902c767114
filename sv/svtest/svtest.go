// Package svtest provides helpers for building SV stores in tests.
package svtest

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/svtools/interval"
	"github.com/grailbio/svtools/sv"
)

// DefaultCI is the confidence interval given to every test breakend unless
// overridden with CI.
var DefaultCI = interval.Interval{Start: -5, End: 5}

// DefaultQual is the quality given to every test breakend unless overridden
// with Qual.
const DefaultQual = 500

// Option modifies a record before it is added to the store.
type Option func(rec *sv.Record)

func both(rec *sv.Record, fn func(b *sv.Breakend)) {
	fn(&rec.Start)
	if rec.End != nil {
		fn(rec.End)
	}
}

// Qual sets the quality of every breakend.
func Qual(q float64) Option {
	return func(rec *sv.Record) { both(rec, func(b *sv.Breakend) { b.Qual = q }) }
}

// Imprecise flags every breakend as imprecise.
func Imprecise() Option {
	return func(rec *sv.Record) { both(rec, func(b *sv.Breakend) { b.Imprecise = true }) }
}

// CI sets the confidence interval of every breakend.
func CI(start, end int) Option {
	return func(rec *sv.Record) {
		both(rec, func(b *sv.Breakend) { b.ConfidenceInterval = interval.New(start, end) })
	}
}

// Homology sets the inexact homology interval of every breakend.
func Homology(start, end int) Option {
	return func(rec *sv.Record) {
		both(rec, func(b *sv.Breakend) { b.InexactHomology = interval.New(start, end) })
	}
}

// Filtered adds hard filters to every breakend.
func Filtered(filters ...string) Option {
	return func(rec *sv.Record) {
		both(rec, func(b *sv.Breakend) { b.Filters = append(b.Filters, filters...) })
	}
}

// LineInsertion flags every breakend as a LINE insertion candidate.
func LineInsertion() Option {
	return func(rec *sv.Record) { both(rec, func(b *sv.Breakend) { b.LineInsertion = true }) }
}

// StartAssembly adds an assembly to the start breakend.
func StartAssembly(id string, reads int) Option {
	return func(rec *sv.Record) {
		rec.Start.Assemblies = append(rec.Start.Assemblies, sv.AssemblyInfo{ID: id, SupportingReads: reads})
	}
}

// EndAssembly adds an assembly to the end breakend.
//
// REQUIRES: the record is not a single breakend.
func EndAssembly(id string, reads int) Option {
	return func(rec *sv.Record) {
		rec.End.Assemblies = append(rec.End.Assemblies, sv.AssemblyInfo{ID: id, SupportingReads: reads})
	}
}

// InsertSequence sets the inserted sequence.
func InsertSequence(seq string) Option {
	return func(rec *sv.Record) { rec.InsertSequence = seq }
}

// Builder accumulates test SVs in a Store.
type Builder struct {
	Store *sv.Store
}

// NewBuilder creates a Builder with an empty store.
func NewBuilder() *Builder {
	return &Builder{Store: sv.NewStore()}
}

func newBreakend(chrom string, pos int, orient sv.Orientation) sv.Breakend {
	return sv.Breakend{
		Chrom:              chrom,
		Position:           pos,
		Orient:             orient,
		ConfidenceInterval: DefaultCI,
		Qual:               DefaultQual,
	}
}

func (bld *Builder) add(rec sv.Record, opts []Option) sv.SvID {
	if rec.Name == "" {
		rec.Name = fmt.Sprintf("sv%d", bld.Store.NumSvs())
	}
	for _, opt := range opts {
		opt(&rec)
	}
	id, err := bld.Store.AddSv(rec)
	if err != nil {
		log.Panicf("svtest: add %s: %v", rec.Name, err)
	}
	return id
}

// Sv adds a paired SV.
func (bld *Builder) Sv(chrom1 string, pos1 int, o1 sv.Orientation,
	chrom2 string, pos2 int, o2 sv.Orientation, opts ...Option) sv.SvID {
	end := newBreakend(chrom2, pos2, o2)
	return bld.add(sv.Record{Start: newBreakend(chrom1, pos1, o1), End: &end}, opts)
}

// Del adds a deletion between start and end.
func (bld *Builder) Del(chrom string, start, end int, opts ...Option) sv.SvID {
	return bld.Sv(chrom, start, sv.PosOrient, chrom, end, sv.NegOrient, opts...)
}

// Dup adds a tandem duplication between start and end.
func (bld *Builder) Dup(chrom string, start, end int, opts ...Option) sv.SvID {
	return bld.Sv(chrom, start, sv.NegOrient, chrom, end, sv.PosOrient, opts...)
}

// Sgl adds a single breakend.
func (bld *Builder) Sgl(chrom string, pos int, orient sv.Orientation, opts ...Option) sv.SvID {
	return bld.add(sv.Record{Start: newBreakend(chrom, pos, orient)}, opts)
}

// Start returns the start breakend of SV id.
func (bld *Builder) Start(id sv.SvID) sv.BreakendID { return bld.Store.Sv(id).Start }

// End returns the end breakend of SV id.
func (bld *Builder) End(id sv.SvID) sv.BreakendID { return bld.Store.Sv(id).End }

// Filters returns a FilterCache seeded from the store's hard filters.
func (bld *Builder) Filters() *sv.FilterCache {
	return sv.NewFilterCacheFromStore(bld.Store)
}
