package svresolve

// Stats summarizes the resolution of one or more samples.
type Stats struct {
	// Samples is the number of samples resolved without error.
	Samples int
	// FailedSamples is the number of samples that returned an error.
	FailedSamples int
	Svs           int
	Sgls          int
	Breakends     int

	AssemblyLinks int
	// DsbLinks counts the DSB links of the final pass, after duplicates are
	// excluded.
	DsbLinks        int
	AlternatePaths  int
	TransitiveLinks int

	DuplicateBreakends    int
	DuplicateSglBreakends int
	// RescuedBreakends counts filtered breakends reinstated for any reason.
	RescuedBreakends int
	// LineRescuedBreakends counts the subset of RescuedBreakends reinstated as
	// LINE insertions only.
	LineRescuedBreakends int

	PonMatches         int
	RealignedBreakends int
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Samples += o.Samples
	s.FailedSamples += o.FailedSamples
	s.Svs += o.Svs
	s.Sgls += o.Sgls
	s.Breakends += o.Breakends
	s.AssemblyLinks += o.AssemblyLinks
	s.DsbLinks += o.DsbLinks
	s.AlternatePaths += o.AlternatePaths
	s.TransitiveLinks += o.TransitiveLinks
	s.DuplicateBreakends += o.DuplicateBreakends
	s.DuplicateSglBreakends += o.DuplicateSglBreakends
	s.RescuedBreakends += o.RescuedBreakends
	s.LineRescuedBreakends += o.LineRescuedBreakends
	s.PonMatches += o.PonMatches
	s.RealignedBreakends += o.RealignedBreakends
	return s
}
