package benchmark

import (
	"github.com/lintang-b-s/hypereval/pkg/datastructure"
	"github.com/lintang-b-s/hypereval/pkg/evaluator"
	"github.com/lintang-b-s/hypereval/pkg/hgrparser"
)

// EvaluateLabels validates one raw partition against the hypergraph and, if
// it holds up, computes km1 and the balance report. Validation failures land
// in SideResult.Err; an infeasible balance is a normal result.
func EvaluateLabels(hg *datastructure.Hypergraph, labels []int32, opts Options) SideResult {
	part, err := datastructure.NewPartition(labels, hg.NumNodes(), opts.Parts)
	if err != nil {
		return SideResult{Err: err}
	}

	return SideResult{
		KM1: evaluator.ComputeKM1(hg, part),
		Balance: evaluator.CheckBalance(part, hg.NumNodes(), opts.Parts, opts.Epsilon,
			opts.ParsedConvention()),
	}
}

// EvaluateSideFiles reads a partition file plus its optional timing
// companion and evaluates it. A missing or unreadable partition is the
// side's failure cause; a missing timing file just leaves the side untimed.
func EvaluateSideFiles(hg *datastructure.Hypergraph, partitionPath, timingPath string,
	opts Options) SideResult {

	labels, err := hgrparser.ReadPartitionFile(partitionPath)
	if err != nil {
		return SideResult{Err: err}
	}

	side := EvaluateLabels(hg, labels, opts)
	if side.Err != nil {
		return side
	}

	if timingPath != "" {
		seconds, ok, err := hgrparser.ReadTimingFile(timingPath)
		if err == nil && ok {
			side.Seconds = seconds
			side.Timed = true
		}
	}

	return side
}

// NewComparisonRecord assembles the per-instance record and decides the
// winner and gap.
func NewComparisonRecord(id string, hg *datastructure.Hypergraph,
	candidate, baseline SideResult) *ComparisonRecord {

	record := &ComparisonRecord{
		ID:            id,
		NumNodes:      hg.NumNodes(),
		NumHyperedges: hg.NumHyperedges(),
		Candidate:     candidate,
		Baseline:      baseline,
	}
	record.decide()
	return record
}
