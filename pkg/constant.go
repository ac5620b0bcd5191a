package pkg

// defaults shared by the evaluation tools. k=64 and epsilon=0.03 is the
// standard benchmark setup for the km1 objective.
const (
	DEFAULT_NUM_PARTS int     = 64
	DEFAULT_EPSILON   float64 = 0.03

	HGR_EXTENSION       = ".hgr"
	PARTITION_EXTENSION = ".partition"
	TIMING_EXTENSION    = ".time"
)

// process exit codes. EXIT_INPUT_ERROR is a usage fault (missing/unparsable
// input), EXIT_INFEASIBLE a reported finding about the evaluated partitions.
// the two must never share a code.
const (
	EXIT_OK          = 0
	EXIT_INPUT_ERROR = 1
	EXIT_INFEASIBLE  = 2
)

const (
	DEBUG = false
)
