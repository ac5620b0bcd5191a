package oracle

import (
	"fmt"
	"time"
)

// The baseline partitioner is a black box behind these interfaces: the
// evaluation engine only configures it, feeds it a hypergraph file and reads
// back the partition, the km1 it reports and its timings. Implementations
// are NOT safe for concurrent use; every batch worker owns its own Oracle,
// constructed through a Factory and closed by that worker.

type Objective uint8

const (
	OBJECTIVE_KM1 Objective = iota
	OBJECTIVE_CUT
)

func (o Objective) String() string {
	switch o {
	case OBJECTIVE_KM1:
		return "km1"
	case OBJECTIVE_CUT:
		return "cut"
	default:
		return "unknown"
	}
}

// Preset selects the baseline partitioner's internal effort level.
type Preset uint8

const (
	PRESET_DEFAULT Preset = iota
	PRESET_QUALITY
	PRESET_HIGHEST_QUALITY
)

func ParsePreset(s string) (Preset, error) {
	switch s {
	case "default":
		return PRESET_DEFAULT, nil
	case "quality":
		return PRESET_QUALITY, nil
	case "highest_quality":
		return PRESET_HIGHEST_QUALITY, nil
	default:
		return 0, fmt.Errorf("unknown preset: %q", s)
	}
}

func (p Preset) String() string {
	switch p {
	case PRESET_DEFAULT:
		return "default"
	case PRESET_QUALITY:
		return "quality"
	case PRESET_HIGHEST_QUALITY:
		return "highest_quality"
	default:
		return "unknown"
	}
}

// Factory constructs one private oracle handle. Construction is expensive,
// amortize it over many Partition calls on the same handle.
type Factory func(threads int) (Oracle, error)

type Oracle interface {
	Configure(k int, epsilon float64, objective Objective, preset Preset) (Context, error)
	Close() error
}

type Context interface {
	Load(path string) (HypergraphHandle, error)
}

type HypergraphHandle interface {
	NumNodes() int
	Partition() (PartitionedHandle, error)
}

type PartitionedHandle interface {
	// Connectivity is the km1 the baseline reports for its own partition.
	Connectivity() (int, error)
	BlockID(node int) int
	// Labels returns the baseline partition in node order.
	Labels() []int32
	LoadTime() time.Duration
	PartitionTime() time.Duration
}
