package datastructure

/*
Hypergraph stores the hyperedge incidence in compressed sparse row layout:
edgeNodes holds the node ids of every hyperedge back to back, edgeOffsets[i]
points at the first node of hyperedge i and edgeOffsets[i+1] one past its
last. Node ids are 0-based internally (the .hgr on-disk format is 1-based).
Instead of O(numHyperedges * maxEdgeSize) we only need O(totalPins +
numHyperedges + 1) space, and iterating one hyperedge is a contiguous scan.
*/
type Hypergraph struct {
	numNodes      int
	numHyperedges int
	edgeOffsets   []int32
	edgeNodes     []int32
}

func NewHypergraph(numNodes, numHyperedges int, edgeOffsets, edgeNodes []int32) *Hypergraph {
	return &Hypergraph{
		numNodes:      numNodes,
		numHyperedges: numHyperedges,
		edgeOffsets:   edgeOffsets,
		edgeNodes:     edgeNodes,
	}
}

func (hg *Hypergraph) NumNodes() int {
	return hg.numNodes
}

func (hg *Hypergraph) NumHyperedges() int {
	return hg.numHyperedges
}

// EdgeNodes returns a view of the node ids of hyperedge i. The returned
// slice aliases the hypergraph storage and must not be mutated.
func (hg *Hypergraph) EdgeNodes(i int) []int32 {
	return hg.edgeNodes[hg.edgeOffsets[i]:hg.edgeOffsets[i+1]]
}

func (hg *Hypergraph) EdgeSize(i int) int {
	return int(hg.edgeOffsets[i+1] - hg.edgeOffsets[i])
}

// TotalPins returns the total incidence count over all hyperedges.
func (hg *Hypergraph) TotalPins() int {
	return len(hg.edgeNodes)
}
