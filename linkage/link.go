package linkage

import (
	"fmt"

	"github.com/grailbio/svtools/sv"
)

// LinkType is the evidence behind a Link.
type LinkType uint8

const (
	// Assembly links share a local assembly.
	Assembly LinkType = iota
	// Dsb links are proximate, facing, otherwise unlinked breakends.
	Dsb
	// Transitive links are facing hops found during path search.
	Transitive
	// Pair is the link between the two breakends of one SV. It appears only
	// inside an AlternatePath, never in a LinkStore.
	Pair
)

var linkTypeNames = [...]string{"ASSEMBLY", "DSB", "TRANSITIVE", "PAIR"}

// String implements fmt.Stringer.
func (t LinkType) String() string {
	if int(t) < len(linkTypeNames) {
		return linkTypeNames[t]
	}
	return fmt.Sprintf("LinkType(%d)", t)
}

// Link associates two breakends.
type Link struct {
	Type LinkType
	// ID names the link, e.g. "asm12" or "dsb3".
	ID string
	// AssemblyID and SupportingReads are set for Assembly links only.
	AssemblyID      string
	SupportingReads int
	First, Second   sv.BreakendID
}

// Other returns the endpoint that is not id.
//
// REQUIRES: id is an endpoint of l.
func (l Link) Other(id sv.BreakendID) sv.BreakendID {
	switch id {
	case l.First:
		return l.Second
	case l.Second:
		return l.First
	}
	panic(fmt.Sprintf("breakend %d not in link %v", id, l))
}

// Reverse swaps the endpoints.
func (l Link) Reverse() Link {
	l.First, l.Second = l.Second, l.First
	return l
}

// Connects checks if l joins a and b, in either direction.
func (l Link) Connects(a, b sv.BreakendID) bool {
	return (l.First == a && l.Second == b) || (l.First == b && l.Second == a)
}

// String implements fmt.Stringer.
func (l Link) String() string {
	return fmt.Sprintf("%s:%s(%d-%d)", l.Type, l.ID, l.First, l.Second)
}

func pairLink(s *sv.Store, from sv.BreakendID) Link {
	return Link{Type: Pair, ID: "PAIR", First: from, Second: s.OtherBreakend(from)}
}
