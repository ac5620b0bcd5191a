package evaluator

import (
	"github.com/lintang-b-s/hypereval/pkg/datastructure"
)

// ComputeKM1 computes the connectivity (lambda-1) metric:
//
//	km1 = sum over hyperedges e of max(lambda(e) - 1, 0)
//
// where lambda(e) is the number of distinct parts the nodes of e touch.
// Empty and single-part hyperedges contribute nothing. One transient set per
// hyperedge, each hyperedge scanned once, O(totalPins) overall independent
// of k.
func ComputeKM1(hg *datastructure.Hypergraph, part *datastructure.Partition) int {
	km1 := 0

	for e := 0; e < hg.NumHyperedges(); e++ {
		nodes := hg.EdgeNodes(e)
		if len(nodes) <= 1 {
			continue
		}

		partsInEdge := make(map[int32]struct{}, 4)
		for _, v := range nodes {
			partsInEdge[part.Label(int(v))] = struct{}{}
		}

		if len(partsInEdge) > 1 {
			km1 += len(partsInEdge) - 1
		}
	}

	return km1
}
