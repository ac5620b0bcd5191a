package benchmark

import (
	"context"
	"time"

	"github.com/lintang-b-s/hypereval/pkg/concurrent"
	"github.com/lintang-b-s/hypereval/pkg/datastructure"
	"github.com/lintang-b-s/hypereval/pkg/evaluator"
	"github.com/lintang-b-s/hypereval/pkg/hgrparser"
	"github.com/lintang-b-s/hypereval/pkg/oracle"
	"github.com/lintang-b-s/hypereval/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Runner drives a batch comparison: every instance is parsed, the candidate
// partition evaluated, the baseline oracle invoked and its partition
// evaluated the same way. Instances are independent, so they are spread over
// a worker pool; the one piece of per-worker state is the oracle handle,
// lazily constructed by the worker that owns it and never shared.
type Runner struct {
	opts          Options
	factory       oracle.Factory
	oracleThreads int
	parser        *hgrparser.HGRParser
	logger        *zap.Logger
}

func NewRunner(opts Options, factory oracle.Factory, logger *zap.Logger) (*Runner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Threads < 1 {
		opts.Threads = DefaultOptions().Threads
	}

	return &Runner{
		opts:          opts,
		factory:       factory,
		oracleThreads: 1,
		parser:        hgrparser.NewHGRParser(),
		logger:        logger,
	}, nil
}

// workerState is owned by exactly one pool worker for the lifetime of a run.
type workerState struct {
	oracle oracle.Oracle
	octx   oracle.Context
}

// Run evaluates all instances and aggregates the records. A ctx deadline
// abandons work still queued, but records already produced are aggregated
// and returned; partial results are a valid batch outcome, not an error.
func (r *Runner) Run(ctx context.Context, instances []Instance) ([]*ComparisonRecord, AggregateSummary, error) {
	numWorkers := util.MinG(r.opts.Threads, util.MaxG(1, len(instances)))
	// when several workers each own an oracle, each gets a fair slice of the
	// requested thread budget
	r.oracleThreads = util.MaxG(1, r.opts.Threads/numWorkers)

	wp := concurrent.NewWorkerPool[Instance, *ComparisonRecord](numWorkers, len(instances))
	states := make([]*workerState, numWorkers+1) // indexed by worker id, 1-based

	wp.Start(ctx, func(workerID int, inst Instance) *ComparisonRecord {
		return r.evalInstance(workerID, states, inst)
	})

	g := errgroup.Group{}
	g.Go(func() error {
		for _, inst := range instances {
			wp.AddJob(inst)
		}
		wp.Close()
		return nil
	})
	g.Go(func() error {
		wp.Wait()
		return nil
	})

	progress := rate.NewLimiter(rate.Every(time.Second), 1)
	records := make([]*ComparisonRecord, 0, len(instances))
	for record := range wp.CollectResults() {
		records = append(records, record)
		if progress.Allow() {
			r.logger.Info("instance evaluated",
				zap.String("instance", record.ID),
				zap.Int("done", len(records)),
				zap.Int("total", len(instances)))
		}
	}

	if err := g.Wait(); err != nil {
		return nil, AggregateSummary{}, err
	}

	for _, state := range states {
		if state != nil && state.oracle != nil {
			if err := state.oracle.Close(); err != nil {
				r.logger.Warn("oracle close failed", zap.Error(err))
			}
		}
	}

	return records, Aggregate(records), nil
}

// evalInstance is the unit of scheduling: one pure computation over the
// instance's own inputs plus one oracle call. No failure here ever aborts
// the batch; the cause travels on the record.
func (r *Runner) evalInstance(workerID int, states []*workerState, inst Instance) *ComparisonRecord {
	hg, err := r.parser.ParseFile(inst.HgrPath, r.logger)
	if err != nil {
		return &ComparisonRecord{ID: inst.ID, Err: err}
	}

	candidate := EvaluateSideFiles(hg, inst.PartitionPath, inst.TimingPath, r.opts)
	baseline := r.evalBaseline(workerID, states, inst, hg.NumNodes())

	return NewComparisonRecord(inst.ID, hg, candidate, baseline)
}

func (r *Runner) evalBaseline(workerID int, states []*workerState, inst Instance, numNodes int) SideResult {
	state, err := r.workerOracle(workerID, states)
	if err != nil {
		return SideResult{Err: err}
	}

	hh, err := state.octx.Load(inst.HgrPath)
	if err != nil {
		return SideResult{Err: util.WrapErrorf(err, util.ErrOracle, "%s: oracle load failed", inst.ID)}
	}

	ph, err := hh.Partition()
	if err != nil {
		return SideResult{Err: util.WrapErrorf(err, util.ErrOracle, "%s: oracle partition failed", inst.ID)}
	}

	km1, err := ph.Connectivity()
	if err != nil {
		return SideResult{Err: util.WrapErrorf(err, util.ErrOracle, "%s: oracle connectivity failed", inst.ID)}
	}

	labels := ph.Labels()
	if len(labels) != numNodes {
		return SideResult{Err: util.WrapErrorf(nil, util.ErrOracle,
			"%s: oracle returned %d labels for %d nodes", inst.ID, len(labels), numNodes)}
	}

	// balance is re-checked locally under the caller's convention; the km1
	// the oracle reports for its own partition is taken as is
	baseline := SideResult{KM1: km1}
	part, err := datastructure.NewPartition(labels, numNodes, r.opts.Parts)
	if err != nil {
		return SideResult{Err: util.WrapErrorf(err, util.ErrOracle, "%s: oracle partition invalid", inst.ID)}
	}
	baseline.Balance = evaluator.CheckBalance(part, numNodes, r.opts.Parts, r.opts.Epsilon,
		r.opts.ParsedConvention())
	baseline.Seconds = ph.PartitionTime().Seconds()
	baseline.Timed = true
	return baseline
}

// workerOracle returns the oracle handle owned by workerID, constructing it
// on first use. Worker ids are 1-based and each slot is only ever touched by
// its own worker goroutine, so no locking is needed.
func (r *Runner) workerOracle(workerID int, states []*workerState) (*workerState, error) {
	if states[workerID] != nil {
		return states[workerID], nil
	}

	handle, err := r.factory(r.oracleThreads)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrOracle, "oracle initialization failed")
	}

	octx, err := handle.Configure(r.opts.Parts, r.opts.Epsilon, oracle.OBJECTIVE_KM1, r.opts.ParsedPreset())
	if err != nil {
		handle.Close()
		return nil, util.WrapErrorf(err, util.ErrOracle, "oracle configuration failed")
	}

	r.logger.Debug("oracle handle constructed", zap.Int("worker", workerID))

	states[workerID] = &workerState{oracle: handle, octx: octx}
	return states[workerID], nil
}
