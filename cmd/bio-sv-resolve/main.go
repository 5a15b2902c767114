package main

//
// bio-sv-resolve
//
// Resolves duplicate and ambiguous structural-variant calls.  Each positional
// argument is a breakend TSV file holding the calls of one sample.  Calls are
// linked by shared assemblies, by double-strand-break proximity and by
// alternate paths through other calls; the links decide which calls are
// duplicates and which filtered calls are rescued.  Calls are optionally
// matched against a panel of normals.
//
// Example:
//
//    bio-sv-resolve --pon-sv=pon.bedpe.gz --pon-sgl=pon.bed.gz --output=report.tsv s1.tsv s2.tsv.gz

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/svtools/pon"
	"github.com/grailbio/svtools/svresolve"
)

type resolveFlags struct {
	ponSvPath  string
	ponSglPath string
	outputPath string
	inputPaths []string
}

func usage() {
	fmt.Fprintln(os.Stderr, `
bio-sv-resolve reads breakend TSV files, one per sample, and writes a TSV report
with one row per SV.

Input columns: SV CHROM POS ORIENT CI_START CI_END HOM_START HOM_END QUAL
IMPRECISE LINE FILTER ASSEMBLIES INSSEQ. The one or two breakends of an SV share
the SV column.

Usage:
    bio-sv-resolve [flags] sample.tsv...

Flags:`)
	flag.PrintDefaults()
}

// loadPon reads the panel of normals, if any.
func loadPon(ctx context.Context, flags resolveFlags, opts svresolve.Opts) (*pon.Cache, error) {
	if flags.ponSvPath == "" && flags.ponSglPath == "" {
		return nil, nil
	}
	cache := pon.NewCache(opts.PonMargin)
	if flags.ponSvPath != "" {
		if err := cache.ReadSvRegions(ctx, flags.ponSvPath); err != nil {
			return nil, err
		}
	}
	if flags.ponSglPath != "" {
		if err := cache.ReadSglRegions(ctx, flags.ponSglPath); err != nil {
			return nil, err
		}
	}
	return cache, nil
}

// run resolves every input sample and writes the report.  It fails if an
// input cannot be read, or if every sample fails.
func run(ctx context.Context, flags resolveFlags, opts svresolve.Opts) error {
	if len(flags.inputPaths) == 0 {
		return errors.E(errors.Invalid, "no input files")
	}
	ponCache, err := loadPon(ctx, flags, opts)
	if err != nil {
		return err
	}
	samples := make([]svresolve.Sample, len(flags.inputPaths))
	for i, path := range flags.inputPaths {
		if samples[i], err = readSample(ctx, path); err != nil {
			return err
		}
	}
	results, stats := svresolve.ResolveAll(ctx, samples, ponCache, opts)
	if stats.Samples == 0 {
		return errors.E(fmt.Sprintf("all %d samples failed", len(samples)))
	}
	return writeReport(ctx, flags.outputPath, samples, results)
}

func main() {
	flag.Usage = usage
	flags := resolveFlags{}
	opts := svresolve.DefaultOpts
	flag.StringVar(&flags.ponSvPath, "pon-sv", "", "BEDPE file of paired panel-of-normals regions.")
	flag.StringVar(&flags.ponSglPath, "pon-sgl", "", "BED file of single-breakend panel-of-normals regions.")
	flag.StringVar(&flags.outputPath, "output", "./sv-resolve.tsv", "Report TSV file.")

	flag.IntVar(&opts.MaxDsbDistance, "max-dsb-distance", svresolve.DefaultOpts.MaxDsbDistance,
		"Largest gap between the two sides of a double-strand break.")
	flag.IntVar(&opts.MaxDsbCandidates, "max-dsb-candidates", svresolve.DefaultOpts.MaxDsbCandidates,
		"A breakend with more DSB candidates than this gets no DSB link.")
	flag.IntVar(&opts.MaxPathLength, "max-path-length", svresolve.DefaultOpts.MaxPathLength,
		"Max number of SVs an alternate path may go through.")
	flag.IntVar(&opts.MaxExploredNodes, "max-explored-nodes", svresolve.DefaultOpts.MaxExploredNodes,
		"Max search states expanded per alternate path query.")
	flag.IntVar(&opts.MaxTransitiveDistance, "max-transitive-distance", svresolve.DefaultOpts.MaxTransitiveDistance,
		"Longest templated sequence a transitive hop may skip.")
	flag.IntVar(&opts.MaxPathsPerSv, "max-paths-per-sv", svresolve.DefaultOpts.MaxPathsPerSv,
		"Max alternate paths kept per SV.")
	flag.BoolVar(&opts.RescueShortSVs, "rescue-short-svs", svresolve.DefaultOpts.RescueShortSVs,
		`Rescue a linked component with no passing breakend if it has more than
--min-rescue-component-size breakends.`)
	flag.IntVar(&opts.MinRescueComponentSize, "min-rescue-component-size", svresolve.DefaultOpts.MinRescueComponentSize,
		"See --rescue-short-svs.")
	flag.Float64Var(&opts.MinLineRescueQual, "min-line-rescue-qual", svresolve.DefaultOpts.MinLineRescueQual,
		"Combined quality above which a DSB-linked LINE insertion pair is rescued.")
	flag.IntVar(&opts.PonMargin, "pon-margin", svresolve.DefaultOpts.PonMargin,
		"Slack, in bases, applied to both sides of a panel-of-normals comparison.")
	flag.IntVar(&opts.MinRealignInsertLength, "min-realign-insert-length", svresolve.DefaultOpts.MinRealignInsertLength,
		"Shortest inserted sequence an insertion needs to be realigned.")
	flag.IntVar(&opts.Parallelism, "parallelism", svresolve.DefaultOpts.Parallelism,
		"Number of samples resolved at once.")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()
	flags.inputPaths = flag.Args()
	if err := run(ctx, flags, opts); err != nil {
		log.Fatal(err)
	}
	log.Printf("All done")
}
