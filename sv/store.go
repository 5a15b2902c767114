package sv

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/svtools/interval"
)

// SvData is a structural variant: two breakends, or one for a single breakend
// (SGL).  It holds ids into its Store.
type SvData struct {
	ID   SvID
	Name string
	Type Type
	// Start is the lower breakend when both sit on the same chromosome.
	Start BreakendID
	// End is NoBreakend for a single breakend.
	End            BreakendID
	InsertSequence string
}

// IsSgl checks if this is a single breakend.
func (s *SvData) IsSgl() bool { return s.End == NoBreakend }

// Breakends lists the one or two breakends owned by s.
func (s *SvData) Breakends() []BreakendID {
	if s.IsSgl() {
		return []BreakendID{s.Start}
	}
	return []BreakendID{s.Start, s.End}
}

// Record is the input to Store.AddSv: an already-parsed variant record.
type Record struct {
	Name  string
	Start Breakend
	// End is nil for a single breakend.
	End            *Breakend
	InsertSequence string
}

// Store is the arena holding every breakend and SV of one sample.  It is not
// safe for concurrent modification.
type Store struct {
	breakends []Breakend
	svs       []SvData
	// svOf maps BreakendID to the owning SvID.
	svOf   []SvID
	byName map[string]SvID
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{byName: map[string]SvID{}}
}

// AddSv validates rec and appends its breakends and SV to the store.  Paired
// breakends on one chromosome are reordered so that Start has the lower
// position.  A zero remote confidence interval defaults to the partner's
// confidence interval.
func (s *Store) AddSv(rec Record) (SvID, error) {
	start := rec.Start
	if err := start.validate(); err != nil {
		return NoSv, errors.E(errors.Invalid, rec.Name, err)
	}
	if _, ok := s.byName[rec.Name]; ok && rec.Name != "" {
		return NoSv, errors.E(errors.Invalid, "duplicate SV name", rec.Name)
	}
	insertLen := len(rec.InsertSequence)
	svID := SvID(len(s.svs))
	data := SvData{ID: svID, Name: rec.Name, InsertSequence: rec.InsertSequence, End: NoBreakend}
	if rec.End == nil {
		data.Type = SGL
		start.SvType, start.InsertSeqLength = SGL, insertLen
		data.Start = s.appendBreakend(start, svID)
	} else {
		end := *rec.End
		if err := end.validate(); err != nil {
			return NoSv, errors.E(errors.Invalid, rec.Name, err)
		}
		if start.Chrom == end.Chrom && end.Position < start.Position {
			start, end = end, start
		}
		if start.RemoteConfidenceInterval == interval.Zero {
			start.RemoteConfidenceInterval = end.ConfidenceInterval
		}
		if end.RemoteConfidenceInterval == interval.Zero {
			end.RemoteConfidenceInterval = start.ConfidenceInterval
		}
		data.Type = Classify(start.Chrom, start.Position, start.Orient,
			end.Chrom, end.Position, end.Orient, insertLen)
		start.SvType, start.InsertSeqLength = data.Type, insertLen
		end.SvType, end.InsertSeqLength = data.Type, insertLen
		data.Start = s.appendBreakend(start, svID)
		data.End = s.appendBreakend(end, svID)
	}
	s.svs = append(s.svs, data)
	if rec.Name != "" {
		s.byName[rec.Name] = svID
	}
	return svID, nil
}

func (s *Store) appendBreakend(b Breakend, owner SvID) BreakendID {
	id := BreakendID(len(s.breakends))
	b.ID = id
	s.breakends = append(s.breakends, b)
	s.svOf = append(s.svOf, owner)
	return id
}

// NumBreakends returns the number of breakends in the store.  Valid ids are
// [0, NumBreakends()).
func (s *Store) NumBreakends() int { return len(s.breakends) }

// NumSvs returns the number of SVs in the store.
func (s *Store) NumSvs() int { return len(s.svs) }

// Contains checks if id refers to a breakend in this store.
func (s *Store) Contains(id BreakendID) bool {
	return id >= 0 && int(id) < len(s.breakends)
}

// Breakend returns the breakend with the given id. The result must not be
// modified; use Replace instead.
//
// REQUIRES: s.Contains(id).
func (s *Store) Breakend(id BreakendID) *Breakend {
	if !s.Contains(id) {
		log.Panicf("breakend %d not in store (size %d)", id, len(s.breakends))
	}
	return &s.breakends[id]
}

// Sv returns the SV with the given id.
func (s *Store) Sv(id SvID) *SvData { return &s.svs[id] }

// SvOf returns the SV owning breakend id.
func (s *Store) SvOf(id BreakendID) SvID { return s.svOf[id] }

// OtherBreakend returns the partner of id, or NoBreakend for a single
// breakend.
func (s *Store) OtherBreakend(id BreakendID) BreakendID {
	data := &s.svs[s.svOf[id]]
	switch id {
	case data.Start:
		return data.End
	case data.End:
		return data.Start
	}
	log.Panicf("breakend %d is not owned by SV %d", id, data.ID)
	return NoBreakend
}

// IsSgl checks if id is a single breakend.
func (s *Store) IsSgl(id BreakendID) bool { return s.svs[s.svOf[id]].IsSgl() }

// SvQual is the quality of an SV: the lower of its breakend qualities.
func (s *Store) SvQual(id SvID) float64 {
	data := &s.svs[id]
	q := s.breakends[data.Start].Qual
	if !data.IsSgl() && s.breakends[data.End].Qual < q {
		q = s.breakends[data.End].Qual
	}
	return q
}

// SvPrecise checks if every breakend of the SV is precise.
func (s *Store) SvPrecise(id SvID) bool {
	for _, b := range s.svs[id].Breakends() {
		if s.breakends[b].Imprecise {
			return false
		}
	}
	return true
}

// Replace installs b in place of the breakend with the same id.  The
// chromosome and orientation must not change.
func (s *Store) Replace(b Breakend) {
	old := s.Breakend(b.ID)
	if old.Chrom != b.Chrom || old.Orient != b.Orient {
		log.Panicf("replace %v: cannot move to %s:%v", old, b.Chrom, b.Orient)
	}
	s.breakends[b.ID] = b
}
