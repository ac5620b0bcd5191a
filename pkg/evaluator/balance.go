package evaluator

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/hypereval/pkg/datastructure"
)

// Convention selects how the allowed maximum part size is rounded. The two
// reference toolchains disagree on this arithmetic, so both are exposed and
// the caller picks.
type Convention uint8

const (
	// CONVENTION_PROPORTIONAL: allowedMax = ceil((n/k) * (1+eps))
	CONVENTION_PROPORTIONAL Convention = iota
	// CONVENTION_CEIL_SCALE: allowedMax = int(ceil(n/k) * (1+eps))
	CONVENTION_CEIL_SCALE
)

func ParseConvention(s string) (Convention, error) {
	switch s {
	case "proportional":
		return CONVENTION_PROPORTIONAL, nil
	case "ceil_scale":
		return CONVENTION_CEIL_SCALE, nil
	default:
		return 0, fmt.Errorf("unknown balance convention: %q", s)
	}
}

func (c Convention) String() string {
	switch c {
	case CONVENTION_PROPORTIONAL:
		return "proportional"
	case CONVENTION_CEIL_SCALE:
		return "ceil_scale"
	default:
		return "unknown"
	}
}

// AllowedMaxPartSize computes the balance bound under the given convention.
func AllowedMaxPartSize(numNodes, k int, epsilon float64, convention Convention) int {
	switch convention {
	case CONVENTION_CEIL_SCALE:
		base := math.Ceil(float64(numNodes) / float64(k))
		return int(base * (1 + epsilon))
	default:
		return int(math.Ceil(float64(numNodes) / float64(k) * (1 + epsilon)))
	}
}

type BalanceReason uint8

const (
	BALANCE_OK BalanceReason = iota
	BALANCE_EMPTY_PART
	BALANCE_MAX_EXCEEDED
)

func (r BalanceReason) String() string {
	switch r {
	case BALANCE_OK:
		return "OK"
	case BALANCE_EMPTY_PART:
		return "empty part found"
	case BALANCE_MAX_EXCEEDED:
		return "max part size exceeded"
	default:
		return "unknown"
	}
}

// BalanceReport is the feasibility verdict for one partition. Infeasibility
// is a finding about the data, not an error: Imbalance is filled in either
// way so infeasible results can still be ranked by how badly they miss.
type BalanceReport struct {
	MaxSize    int
	MinSize    int
	AllowedMax int
	Imbalance  float64
	Feasible   bool
	Reason     BalanceReason
}

func (r BalanceReport) String() string {
	if r.Feasible {
		return fmt.Sprintf("feasible, maxBlk=%d/%d, imbalance=%.4f", r.MaxSize, r.AllowedMax, r.Imbalance)
	}
	return fmt.Sprintf("INFEASIBLE (%s), maxBlk=%d/%d, minBlk=%d, imbalance=%.4f",
		r.Reason, r.MaxSize, r.AllowedMax, r.MinSize, r.Imbalance)
}

// CheckBalance tallies part sizes and checks the balance constraint:
// every part non-empty and no part above the allowed maximum. Labels are a
// dense [0, k) range once validation passed, so the tally is a flat array.
func CheckBalance(part *datastructure.Partition, numNodes, k int, epsilon float64,
	convention Convention) BalanceReport {

	partSizes := make([]int, k)
	for _, label := range part.Labels() {
		partSizes[label]++
	}

	maxSize := 0
	minSize := numNodes + 1
	for _, size := range partSizes {
		if size > maxSize {
			maxSize = size
		}
		if size < minSize {
			minSize = size
		}
	}

	allowedMax := AllowedMaxPartSize(numNodes, k, epsilon, convention)
	avgSize := float64(numNodes) / float64(k)
	imbalance := (float64(maxSize) - avgSize) / avgSize

	report := BalanceReport{
		MaxSize:    maxSize,
		MinSize:    minSize,
		AllowedMax: allowedMax,
		Imbalance:  imbalance,
		Feasible:   true,
		Reason:     BALANCE_OK,
	}

	if minSize < 1 {
		report.Feasible = false
		report.Reason = BALANCE_EMPTY_PART
		return report
	}

	if maxSize > allowedMax {
		report.Feasible = false
		report.Reason = BALANCE_MAX_EXCEEDED
		return report
	}

	return report
}
