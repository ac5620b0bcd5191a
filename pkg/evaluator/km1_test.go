package evaluator

import (
	"testing"

	"github.com/lintang-b-s/hypereval/pkg/datastructure"
)

func buildHypergraph(t *testing.T, numNodes int, edges [][]int32) *datastructure.Hypergraph {
	t.Helper()

	edgeOffsets := make([]int32, 1, len(edges)+1)
	edgeNodes := make([]int32, 0)
	for _, e := range edges {
		edgeNodes = append(edgeNodes, e...)
		edgeOffsets = append(edgeOffsets, int32(len(edgeNodes)))
	}
	return datastructure.NewHypergraph(numNodes, len(edges), edgeOffsets, edgeNodes)
}

func buildPartition(t *testing.T, labels []int32, k int) *datastructure.Partition {
	t.Helper()

	p, err := datastructure.NewPartition(labels, len(labels), k)
	if err != nil {
		t.Fatalf("partition should be valid: %v", err)
	}
	return p
}

func TestComputeKM1(t *testing.T) {
	testCases := []struct {
		name     string
		numNodes int
		edges    [][]int32
		labels   []int32
		k        int
		want     int
	}{
		{
			name:     "edges within their own part cost nothing",
			numNodes: 4,
			edges:    [][]int32{{0, 1}, {2, 3}},
			labels:   []int32{0, 0, 1, 1},
			k:        2,
			want:     0,
		},
		{
			name:     "each split edge costs lambda minus one",
			numNodes: 4,
			edges:    [][]int32{{0, 1}, {2, 3}},
			labels:   []int32{0, 1, 0, 1},
			k:        2,
			want:     2,
		},
		{
			name:     "all nodes in one part",
			numNodes: 6,
			edges:    [][]int32{{0, 1, 2}, {3, 4}, {0, 5}},
			labels:   []int32{0, 0, 0, 0, 0, 0},
			k:        4,
			want:     0,
		},
		{
			name:     "empty and singleton edges contribute zero",
			numNodes: 3,
			edges:    [][]int32{{}, {1}, {0, 2}},
			labels:   []int32{0, 1, 2},
			k:        3,
			want:     1,
		},
		{
			name:     "contribution depends on distinct parts, not edge size",
			numNodes: 8,
			edges:    [][]int32{{0, 1, 2, 3, 4, 5, 6, 7}},
			labels:   []int32{0, 0, 1, 1, 2, 2, 2, 0},
			k:        4,
			want:     2, // lambda = 3 distinct parts over 8 pins
		},
		{
			name:     "no hyperedges at all",
			numNodes: 3,
			edges:    [][]int32{},
			labels:   []int32{0, 1, 0},
			k:        2,
			want:     0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			hg := buildHypergraph(t, tt.numNodes, tt.edges)
			part := buildPartition(t, tt.labels, tt.k)

			got := ComputeKM1(hg, part)
			if got != tt.want {
				t.Errorf("ComputeKM1 = %d, want %d", got, tt.want)
			}
			if got < 0 {
				t.Error("km1 must never be negative")
			}
		})
	}
}
