package sv

import "github.com/grailbio/svtools/interval"

func testBreakend(chrom string, pos int, orient Orientation) Breakend {
	return Breakend{
		Chrom:              chrom,
		Position:           pos,
		Orient:             orient,
		ConfidenceInterval: interval.Interval{Start: -5, End: 5},
		Qual:               100,
	}
}
