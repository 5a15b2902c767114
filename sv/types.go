package sv

import (
	"fmt"
	"sort"
)

// Orientation is the side of the breakend that stays attached to the
// reference: +1 means the sequence to the left of the position is kept, -1
// means the sequence to the right.
type Orientation int8

const (
	// PosOrient is orientation +1.
	PosOrient Orientation = 1
	// NegOrient is orientation -1.
	NegOrient Orientation = -1
)

// String implements fmt.Stringer.
func (o Orientation) String() string {
	if o == PosOrient {
		return "1"
	}
	return "-1"
}

// ParseOrientation parses "1", "+1", "+", "-1" or "-".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "1", "+1", "+":
		return PosOrient, nil
	case "-1", "-":
		return NegOrient, nil
	}
	return 0, fmt.Errorf("invalid orientation '%s'", s)
}

// Type is the structural-variant class, derived from the breakend geometry.
type Type uint8

const (
	// DEL is a deletion: +1 then -1 on the same chromosome.
	DEL Type = iota
	// DUP is a tandem duplication: -1 then +1 on the same chromosome.
	DUP
	// INV is an inversion: both breakends share an orientation.
	INV
	// INS is an insertion: a deletion whose inserted sequence is at least as
	// long as the deleted span.
	INS
	// BND is an inter-chromosomal translocation.
	BND
	// SGL is a single breakend with no resolved partner.
	SGL
)

var typeNames = [...]string{"DEL", "DUP", "INV", "INS", "BND", "SGL"}

// String implements fmt.Stringer.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// Classify computes the SV type of a pair of breakends.  start must be the
// lower of the two when they share a chromosome.
func Classify(startChrom string, startPos int, startOrient Orientation,
	endChrom string, endPos int, endOrient Orientation, insertLen int) Type {
	if startChrom != endChrom {
		return BND
	}
	if startOrient == endOrient {
		return INV
	}
	if startOrient == NegOrient {
		return DUP
	}
	// A deletion where the replacement is at least as long as the removed
	// sequence is reported as an insertion.
	if deleted := endPos - startPos - 1; insertLen > 0 && insertLen >= deleted {
		return INS
	}
	return DEL
}

// BreakendID is a dense index of a breakend in a Store.
type BreakendID int32

// NoBreakend marks the missing partner of a single breakend.
const NoBreakend = BreakendID(-1)

// SvID is a dense index of an SV in a Store.
type SvID int32

// NoSv is returned when a breakend is not owned by any SV.
const NoSv = SvID(-1)

// BreakendSet is an unordered set of breakends.
type BreakendSet map[BreakendID]struct{}

// NewBreakendSet creates a set holding ids.
func NewBreakendSet(ids ...BreakendID) BreakendSet {
	s := BreakendSet{}
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id.
func (s BreakendSet) Add(id BreakendID) { s[id] = struct{}{} }

// Contains checks if id is in the set.
func (s BreakendSet) Contains(id BreakendID) bool {
	_, ok := s[id]
	return ok
}

// Sorted lists the members in increasing id order.
func (s BreakendSet) Sorted() []BreakendID {
	ids := make([]BreakendID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
