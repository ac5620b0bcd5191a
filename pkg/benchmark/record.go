package benchmark

import (
	"sort"

	"github.com/lintang-b-s/hypereval/pkg/evaluator"
)

type Winner uint8

const (
	WINNER_NONE Winner = iota
	WINNER_CANDIDATE
	WINNER_BASELINE
	WINNER_TIE
)

func (w Winner) String() string {
	switch w {
	case WINNER_CANDIDATE:
		return "candidate"
	case WINNER_BASELINE:
		return "baseline"
	case WINNER_TIE:
		return "tie"
	default:
		return "none"
	}
}

// SideResult is the evaluation of one partition (candidate or baseline) of
// one instance. Err carries the failure cause when the side could not be
// evaluated (unreadable/invalid partition, oracle fault); an infeasible
// balance report is NOT a failure, it is a successful evaluation finding.
type SideResult struct {
	KM1     int
	Balance evaluator.BalanceReport
	Seconds float64
	Timed   bool
	Err     error
}

func (s SideResult) Valid() bool {
	return s.Err == nil
}

// ComparisonRecord is the value-only outcome of one instance: both sides
// evaluated plus the quality verdict. Err is set when the instance could not
// be evaluated at all (hypergraph unreadable).
type ComparisonRecord struct {
	ID            string
	NumNodes      int
	NumHyperedges int

	Candidate SideResult
	Baseline  SideResult

	Winner     Winner
	GapPercent float64

	Err error
}

// Compared reports whether the record participates in the quality
// comparison: both sides evaluated successfully.
func (r *ComparisonRecord) Compared() bool {
	return r.Err == nil && r.Candidate.Valid() && r.Baseline.Valid()
}

// decide fills in winner and gap from the two km1 values. Lower connectivity
// wins; the gap is relative to the baseline and pinned to 0 when the
// baseline km1 is 0 so no NaN/Inf ever reaches the aggregate.
func (r *ComparisonRecord) decide() {
	if !r.Compared() {
		r.Winner = WINNER_NONE
		return
	}

	switch {
	case r.Candidate.KM1 < r.Baseline.KM1:
		r.Winner = WINNER_CANDIDATE
	case r.Candidate.KM1 > r.Baseline.KM1:
		r.Winner = WINNER_BASELINE
	default:
		r.Winner = WINNER_TIE
	}

	if r.Baseline.KM1 > 0 {
		r.GapPercent = float64(r.Candidate.KM1-r.Baseline.KM1) / float64(r.Baseline.KM1) * 100
	} else {
		r.GapPercent = 0
	}
}

// AggregateSummary condenses a batch of comparison records. Failure and
// infeasibility counts are reported separately from the win/tie/loss record
// so "worse quality" and "broken output" stay distinguishable.
type AggregateSummary struct {
	Instances int
	Compared  int
	Failed    int

	Wins   int
	Ties   int
	Losses int

	MeanGapPercent   float64
	MedianGapPercent float64

	TotalCandidateKM1 int
	TotalBaselineKM1  int

	MeanCandidateSeconds float64
	CandidateTimed       int
	MeanBaselineSeconds  float64
	BaselineTimed        int
	Speedup              float64

	CandidateInfeasible int
	BaselineInfeasible  int
	CandidateInvalid    int
	BaselineInvalid     int
}

// Aggregate folds per-instance records into the summary. Only compared
// records enter the quality statistics; instances without a candidate timing
// are excluded from the time mean rather than counted as zero.
func Aggregate(records []*ComparisonRecord) AggregateSummary {
	summary := AggregateSummary{Instances: len(records)}

	gaps := make([]float64, 0, len(records))
	candidateSeconds, baselineSeconds := 0.0, 0.0

	for _, r := range records {
		if r.Err != nil {
			summary.Failed++
			continue
		}

		if r.Candidate.Valid() {
			if !r.Candidate.Balance.Feasible {
				summary.CandidateInfeasible++
			}
		} else {
			summary.CandidateInvalid++
		}
		if r.Baseline.Valid() {
			if !r.Baseline.Balance.Feasible {
				summary.BaselineInfeasible++
			}
		} else {
			summary.BaselineInvalid++
		}

		if r.Candidate.Valid() && r.Candidate.Timed {
			candidateSeconds += r.Candidate.Seconds
			summary.CandidateTimed++
		}
		if r.Baseline.Valid() && r.Baseline.Timed {
			baselineSeconds += r.Baseline.Seconds
			summary.BaselineTimed++
		}

		if !r.Compared() {
			continue
		}

		summary.Compared++
		summary.TotalCandidateKM1 += r.Candidate.KM1
		summary.TotalBaselineKM1 += r.Baseline.KM1
		gaps = append(gaps, r.GapPercent)

		switch r.Winner {
		case WINNER_CANDIDATE:
			summary.Wins++
		case WINNER_BASELINE:
			summary.Losses++
		case WINNER_TIE:
			summary.Ties++
		}
	}

	if len(gaps) > 0 {
		summary.MeanGapPercent = mean(gaps)
		summary.MedianGapPercent = median(gaps)
	}

	if summary.CandidateTimed > 0 {
		summary.MeanCandidateSeconds = candidateSeconds / float64(summary.CandidateTimed)
	}
	if summary.BaselineTimed > 0 {
		summary.MeanBaselineSeconds = baselineSeconds / float64(summary.BaselineTimed)
	}
	if summary.MeanCandidateSeconds > 0 && summary.BaselineTimed > 0 {
		summary.Speedup = summary.MeanBaselineSeconds / summary.MeanCandidateSeconds
	}

	return summary
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
