package evaluator

import (
	"testing"
)

func TestAllowedMaxPartSize(t *testing.T) {
	testCases := []struct {
		name       string
		numNodes   int
		k          int
		epsilon    float64
		convention Convention
		want       int
	}{
		{
			name:       "proportional 10 nodes 2 parts",
			numNodes:   10,
			k:          2,
			epsilon:    0.03,
			convention: CONVENTION_PROPORTIONAL,
			want:       6, // ceil(5 * 1.03) = ceil(5.15)
		},
		{
			name:       "ceil-then-scale 10 nodes 2 parts",
			numNodes:   10,
			k:          2,
			epsilon:    0.03,
			convention: CONVENTION_CEIL_SCALE,
			want:       5, // int(ceil(5) * 1.03) = int(5.15)
		},
		{
			name:       "zero epsilon is a hard cap at the ceiling",
			numNodes:   10,
			k:          3,
			epsilon:    0,
			convention: CONVENTION_PROPORTIONAL,
			want:       4,
		},
		{
			name:       "conventions diverge when n divides k",
			numNodes:   100,
			k:          4,
			epsilon:    0.03,
			convention: CONVENTION_PROPORTIONAL,
			want:       26, // ceil(25 * 1.03) = ceil(25.75)
		},
		{
			name:       "ceil-then-scale truncates the same bound",
			numNodes:   100,
			k:          4,
			epsilon:    0.03,
			convention: CONVENTION_CEIL_SCALE,
			want:       25, // int(25 * 1.03) = int(25.75)
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := AllowedMaxPartSize(tt.numNodes, tt.k, tt.epsilon, tt.convention)
			if got != tt.want {
				t.Errorf("AllowedMaxPartSize = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAllowedMaxMonotoneInEpsilon(t *testing.T) {
	for _, conv := range []Convention{CONVENTION_PROPORTIONAL, CONVENTION_CEIL_SCALE} {
		prev := 0
		for _, eps := range []float64{0, 0.01, 0.03, 0.1, 0.5, 1.0} {
			got := AllowedMaxPartSize(1000, 7, eps, conv)
			if got < prev {
				t.Errorf("%s: bound shrank from %d to %d at epsilon %f", conv, prev, got, eps)
			}
			prev = got
		}
	}
}

func TestCheckBalance(t *testing.T) {
	testCases := []struct {
		name       string
		labels     []int32
		k          int
		epsilon    float64
		convention Convention
		feasible   bool
		reason     BalanceReason
		maxSize    int
		minSize    int
	}{
		{
			name:       "within bound",
			labels:     []int32{0, 0, 0, 0, 0, 0, 1, 1, 1, 1},
			k:          2,
			epsilon:    0.03,
			convention: CONVENTION_PROPORTIONAL,
			feasible:   true,
			reason:     BALANCE_OK,
			maxSize:    6,
			minSize:    4,
		},
		{
			name:       "one node over the bound",
			labels:     []int32{0, 0, 0, 0, 0, 0, 0, 1, 1, 1},
			k:          2,
			epsilon:    0.03,
			convention: CONVENTION_PROPORTIONAL,
			feasible:   false,
			reason:     BALANCE_MAX_EXCEEDED,
			maxSize:    7,
			minSize:    3,
		},
		{
			name:       "empty part trumps everything else",
			labels:     []int32{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			k:          2,
			epsilon:    0.03,
			convention: CONVENTION_PROPORTIONAL,
			feasible:   false,
			reason:     BALANCE_EMPTY_PART,
			maxSize:    10,
			minSize:    0,
		},
		{
			name:       "stricter convention flips the verdict",
			labels:     []int32{0, 0, 0, 0, 0, 0, 1, 1, 1, 1},
			k:          2,
			epsilon:    0.03,
			convention: CONVENTION_CEIL_SCALE,
			feasible:   false,
			reason:     BALANCE_MAX_EXCEEDED,
			maxSize:    6,
			minSize:    4,
		},
		{
			name:       "perfectly balanced",
			labels:     []int32{0, 1, 2, 0, 1, 2},
			k:          3,
			epsilon:    0,
			convention: CONVENTION_PROPORTIONAL,
			feasible:   true,
			reason:     BALANCE_OK,
			maxSize:    2,
			minSize:    2,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			part := buildPartition(t, tt.labels, tt.k)
			report := CheckBalance(part, len(tt.labels), tt.k, tt.epsilon, tt.convention)

			if report.Feasible != tt.feasible {
				t.Errorf("Feasible = %v, want %v (%s)", report.Feasible, tt.feasible, report)
			}
			if report.Reason != tt.reason {
				t.Errorf("Reason = %v, want %v", report.Reason, tt.reason)
			}
			if report.MaxSize != tt.maxSize || report.MinSize != tt.minSize {
				t.Errorf("sizes = (%d, %d), want (%d, %d)",
					report.MaxSize, report.MinSize, tt.maxSize, tt.minSize)
			}
		})
	}
}

func TestCheckBalanceImbalanceAlwaysFilled(t *testing.T) {
	part := buildPartition(t, []int32{0, 0, 0, 0, 0, 0, 0, 1, 1, 1}, 2)
	report := CheckBalance(part, 10, 2, 0.03, CONVENTION_PROPORTIONAL)

	if report.Feasible {
		t.Fatal("partition should be infeasible")
	}
	// maxSize 7 against an average of 5: (7-5)/5
	if report.Imbalance < 0.399 || report.Imbalance > 0.401 {
		t.Errorf("Imbalance = %f, want 0.4", report.Imbalance)
	}
}

func TestParseConvention(t *testing.T) {
	if c, err := ParseConvention("proportional"); err != nil || c != CONVENTION_PROPORTIONAL {
		t.Errorf("ParseConvention(proportional) = (%v, %v)", c, err)
	}
	if c, err := ParseConvention("ceil_scale"); err != nil || c != CONVENTION_CEIL_SCALE {
		t.Errorf("ParseConvention(ceil_scale) = (%v, %v)", c, err)
	}
	if _, err := ParseConvention("strict"); err == nil {
		t.Error("unknown convention should be rejected")
	}
}
