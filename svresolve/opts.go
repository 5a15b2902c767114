package svresolve

import (
	"runtime"

	"github.com/grailbio/svtools/linkage"
	"github.com/grailbio/svtools/pon"
	"github.com/grailbio/svtools/realign"
	"github.com/grailbio/svtools/rescue"
)

// Opts configures Resolve and ResolveAll.
type Opts struct {
	// MaxDsbDistance is the largest gap between the two sides of a
	// double-strand break.
	MaxDsbDistance int
	// MaxDsbCandidates is the most DSB partners a breakend may have before it
	// is considered ambiguous and left unlinked.
	MaxDsbCandidates int

	// MaxPathLength is the most SVs an alternate path may go through.
	MaxPathLength int
	// MaxExploredNodes caps the search states expanded per alternate path
	// query.
	MaxExploredNodes int
	// MaxTransitiveDistance is the longest templated sequence a transitive hop
	// may skip.
	MaxTransitiveDistance int
	// MaxPathsPerSv caps the alternate paths kept per SV.
	MaxPathsPerSv int

	// RescueShortSVs allows a linked component with no passing breakend to be
	// rescued when it has more than MinRescueComponentSize breakends.
	RescueShortSVs         bool
	MinRescueComponentSize int
	// MinLineRescueQual is the combined quality above which a DSB-linked pair
	// of LINE insertion breakends is rescued.
	MinLineRescueQual float64

	// PonMargin is the slack applied to both sides of a PON comparison.
	PonMargin int
	// MinRealignInsertLength is the shortest inserted sequence an insertion
	// needs to be realigned.
	MinRealignInsertLength int

	// Parallelism is the number of samples ResolveAll processes at once.
	Parallelism int
}

// DefaultOpts are the default settings.
var DefaultOpts = Opts{
	MaxDsbDistance:         linkage.DefaultDsbOpts.MaxDistance,
	MaxDsbCandidates:       linkage.DefaultDsbOpts.MaxCandidates,
	MaxPathLength:          linkage.DefaultTransitiveOpts.MaxPathLength,
	MaxExploredNodes:       linkage.DefaultTransitiveOpts.MaxExploredNodes,
	MaxTransitiveDistance:  linkage.DefaultTransitiveOpts.MaxTransitiveDistance,
	MaxPathsPerSv:          linkage.DefaultTransitiveOpts.MaxPathsPerSv,
	RescueShortSVs:         false,
	MinRescueComponentSize: rescue.DefaultMinComponentSize,
	MinLineRescueQual:      1000,
	PonMargin:              pon.DefaultMargin,
	MinRealignInsertLength: realign.DefaultMinInsertLength,
	Parallelism:            runtime.NumCPU(),
}

func (o Opts) dsbOpts() linkage.DsbOpts {
	return linkage.DsbOpts{MaxDistance: o.MaxDsbDistance, MaxCandidates: o.MaxDsbCandidates}
}

func (o Opts) transitiveOpts() linkage.TransitiveOpts {
	return linkage.TransitiveOpts{
		MaxPathLength:         o.MaxPathLength,
		MaxExploredNodes:      o.MaxExploredNodes,
		MaxTransitiveDistance: o.MaxTransitiveDistance,
		MaxPathsPerSv:         o.MaxPathsPerSv,
	}
}
