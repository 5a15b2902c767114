package sv

import (
	"fmt"

	"github.com/grailbio/svtools/interval"
)

// AssemblyInfo names one local assembly that produced a breakend, and how
// many reads support the breakend in that assembly.
type AssemblyInfo struct {
	ID              string
	SupportingReads int
}

// Breakend is one side of a structural variant.
//
// A Breakend in a Store is treated as immutable; realignment produces a
// replacement value that is installed with Store.Replace.
type Breakend struct {
	// ID is assigned by Store.AddSv.
	ID       BreakendID
	Chrom    string
	Position int
	Orient   Orientation
	// ConfidenceInterval is an offset from Position; it contains zero.
	ConfidenceInterval interval.Interval
	// RemoteConfidenceInterval is the partner's confidence interval as seen
	// from this breakend.
	RemoteConfidenceInterval interval.Interval
	// InexactHomology is an offset from Position; it contains zero.
	InexactHomology interval.Interval
	Qual            float64
	Imprecise       bool
	// LineInsertion flags a breakend whose inserted sequence looks like a
	// LINE element (e.g. a poly-A tail).
	LineInsertion bool
	// Filters lists the hard filters reported by the caller.  Empty means PASS.
	Filters    []string
	Assemblies []AssemblyInfo

	// SvType and InsertSeqLength are copied from the owning SV.
	SvType          Type
	InsertSeqLength int

	realigned bool
}

// Realigned is true for a value produced by a realignment that moved the
// breakend.
func (b *Breakend) Realigned() bool { return b.realigned }

// MarkRealigned returns a copy of b flagged as realigned.
func (b Breakend) MarkRealigned() Breakend {
	b.realigned = true
	return b
}

// ConfidenceRange is the absolute range covered by the confidence interval.
func (b *Breakend) ConfidenceRange() interval.Interval {
	return b.ConfidenceInterval.Shift(b.Position)
}

// MatchRange is the range used for proximity matching: the confidence range
// for a precise breakend, and the raw position for an imprecise one.
func (b *Breakend) MatchRange() interval.Interval {
	if b.Imprecise {
		return interval.At(b.Position)
	}
	return b.ConfidenceRange()
}

// Facing checks if o sits on the same chromosome with the opposite
// orientation.
func (b *Breakend) Facing(o *Breakend) bool {
	return b.Chrom == o.Chrom && b.Orient != o.Orient
}

// AssemblyReads returns the reads supporting the breakend in the given
// assembly, and false if the breakend is not part of it.
func (b *Breakend) AssemblyReads(id string) (int, bool) {
	for _, a := range b.Assemblies {
		if a.ID == id {
			return a.SupportingReads, true
		}
	}
	return 0, false
}

// String implements fmt.Stringer.
func (b *Breakend) String() string {
	return fmt.Sprintf("%d(%s:%d:%v)", b.ID, b.Chrom, b.Position, b.Orient)
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func (b *Breakend) validate() error {
	if b.Chrom == "" {
		return fmt.Errorf("breakend at %d: empty chromosome", b.Position)
	}
	if b.Orient != PosOrient && b.Orient != NegOrient {
		return fmt.Errorf("breakend %s:%d: invalid orientation %d", b.Chrom, b.Position, b.Orient)
	}
	if !b.ConfidenceInterval.ContainsZero() {
		return fmt.Errorf("breakend %s:%d: confidence interval %v does not contain zero",
			b.Chrom, b.Position, b.ConfidenceInterval)
	}
	if !b.InexactHomology.ContainsZero() {
		return fmt.Errorf("breakend %s:%d: homology interval %v does not contain zero",
			b.Chrom, b.Position, b.InexactHomology)
	}
	// Realignment moves a breakend within these intervals, so they must stay
	// on the contig.
	if lo := b.Position + minInt(b.ConfidenceInterval.Start, b.InexactHomology.Start); lo < 1 {
		return fmt.Errorf("breakend %s:%d: uncertainty extends to position %d", b.Chrom, b.Position, lo)
	}
	return nil
}
