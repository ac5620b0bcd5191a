package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/hypereval/pkg/util"
)

// Partition is a validated node -> part assignment. labels[v] is the part of
// node v, always inside [0, k). Construct through NewPartition, never mutate.
type Partition struct {
	labels []int32
	k      int
}

// NewPartition validates the raw labels against the node count and part
// count. A length mismatch reports ErrShape, the first out-of-range label
// reports ErrRange with the offending node and label.
func NewPartition(labels []int32, numNodes, k int) (*Partition, error) {
	if len(labels) != numNodes {
		return nil, util.WrapErrorf(nil, util.ErrShape,
			"partition length mismatch: expected %d, got %d", numNodes, len(labels))
	}

	for v, label := range labels {
		if label < 0 || int(label) >= k {
			return nil, util.WrapErrorf(nil, util.ErrRange,
				"invalid label at node %d: %d (must be 0 to %d)", v, label, k-1)
		}
	}

	return &Partition{labels: labels, k: k}, nil
}

func (p *Partition) Label(v int) int32 {
	return p.labels[v]
}

func (p *Partition) Len() int {
	return len(p.labels)
}

func (p *Partition) K() int {
	return p.k
}

// Labels returns a view of the underlying labels, in node order.
func (p *Partition) Labels() []int32 {
	return p.labels
}

func (p *Partition) String() string {
	return fmt.Sprintf("partition{n: %d, k: %d}", len(p.labels), p.k)
}
