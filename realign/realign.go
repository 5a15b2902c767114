// Package realign recenters breakend positions inside their uncertainty
// intervals.
package realign

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/svtools/sv"
)

// DefaultMinInsertLength is the default shortest inserted sequence an
// insertion needs to be realigned.
const DefaultMinInsertLength = 32

// Realigner moves a breakend to the centre of the union of its confidence and
// inexact homology intervals.  Realignment is a pure function of its input;
// the caller installs the result with sv.Store.Replace.
type Realigner struct {
	// MinInsertLength is the shortest inserted sequence an insertion needs to
	// be realigned.
	MinInsertLength int
}

// Realign returns b recentred.  Single breakends are realigned only when
// imprecise, and insertions only when their inserted sequence is at least
// MinInsertLength long.  If b is not eligible, or is already centred, a copy
// of b with Realigned()==false is returned.  The chromosome and orientation
// never change.
func (r Realigner) Realign(b sv.Breakend, isSingle, isImprecise bool) sv.Breakend {
	if isSingle && !isImprecise {
		return b
	}
	if b.SvType == sv.INS && b.InsertSeqLength < r.MinInsertLength {
		return b
	}
	union := b.ConfidenceInterval.Union(b.InexactHomology)
	shift := union.Centre()
	if shift == 0 {
		return b
	}
	b.Position += shift
	b.ConfidenceInterval = union.Shift(-shift)
	b.InexactHomology = b.InexactHomology.Shift(-shift)
	return b.MarkRealigned()
}

// RealignRemote returns partner with its remote confidence interval set to
// the confidence interval of realignedLocal, the realigned other breakend of
// the same SV.  partner is returned unchanged if realignedLocal did not move.
func (r Realigner) RealignRemote(partner, realignedLocal sv.Breakend) sv.Breakend {
	if !realignedLocal.Realigned() {
		return partner
	}
	partner.RemoteConfidenceInterval = realignedLocal.ConfidenceInterval
	return partner
}

// RealignStore realigns every breakend of store in place and returns the
// number of breakends moved.
func (r Realigner) RealignStore(store *sv.Store) int {
	n := 0
	for i := 0; i < store.NumSvs(); i++ {
		data := store.Sv(sv.SvID(i))
		start := *store.Breakend(data.Start)
		if data.IsSgl() {
			start = r.Realign(start, true, start.Imprecise)
			if start.Realigned() {
				store.Replace(start)
				n++
			}
			continue
		}
		end := *store.Breakend(data.End)
		start = r.Realign(start, false, start.Imprecise)
		end = r.Realign(end, false, end.Imprecise)
		start, end = r.RealignRemote(start, end), r.RealignRemote(end, start)
		for _, b := range []sv.Breakend{start, end} {
			if b.Realigned() {
				n++
			}
		}
		store.Replace(start)
		store.Replace(end)
	}
	log.Debug.Printf("realign: moved %d of %d breakends", n, store.NumBreakends())
	return n
}
