package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/hypereval/pkg"
	"github.com/lintang-b-s/hypereval/pkg/benchmark"
	log "github.com/lintang-b-s/hypereval/pkg/logger"
	"github.com/lintang-b-s/hypereval/pkg/oracle"
	"github.com/lintang-b-s/hypereval/pkg/util"
	"go.uber.org/zap"
)

var (
	partitionFile = flag.String("partition", "", "candidate partition file (single-instance mode)")
	partitionDir  = flag.String("partition-dir", "", "directory holding candidate .partition/.time companions (default: the hypergraph's directory)")
	parts         = flag.Int("k", pkg.DEFAULT_NUM_PARTS, "number of parts")
	epsilon       = flag.Float64("e", pkg.DEFAULT_EPSILON, "balance epsilon")
	threads       = flag.Int("t", 0, "worker threads (default: all cpus)")
	preset        = flag.String("preset", "quality", "baseline preset: default|quality|highest_quality")
	convention    = flag.String("convention", "proportional", "balance convention: proportional|ceil_scale")
	batch         = flag.Bool("batch", false, "treat the input as a glob pattern")
	oracleBin     = flag.String("oracle-bin", "MtKaHyPar", "baseline partitioner binary")
)

func main() {
	flag.Parse()

	logger, err := log.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(); err != nil {
		panic(err)
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: compare [flags] <hypergraph.hgr | glob>")
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}
	input := flag.Arg(0)

	opts := benchmark.DefaultOptions()
	opts.Parts = *parts
	opts.Epsilon = *epsilon
	opts.Preset = *preset
	opts.Convention = *convention
	if *threads > 0 {
		opts.Threads = *threads
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}

	factory := oracle.BinaryFactory(*oracleBin, logger)

	if *batch || strings.ContainsAny(input, "*?[") {
		os.Exit(runBatch(logger, input, opts, factory))
	}
	os.Exit(runSingle(logger, input, opts, factory))
}

func runSingle(logger *zap.Logger, hgrPath string, opts benchmark.Options, factory oracle.Factory) int {
	inst := benchmark.ResolveCompanion(hgrPath, companionDir(hgrPath))
	if *partitionFile != "" {
		inst.PartitionPath = *partitionFile
		inst.TimingPath = strings.TrimSuffix(*partitionFile, filepath.Ext(*partitionFile)) + pkg.TIMING_EXTENSION
	}

	runner, err := benchmark.NewRunner(opts, factory, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return pkg.EXIT_INPUT_ERROR
	}

	fmt.Printf("Comparing: %s\n", hgrPath)
	records, summary, err := runner.Run(context.Background(), []benchmark.Instance{inst})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return pkg.EXIT_INPUT_ERROR
	}

	record := records[0]
	if record.Err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", record.Err)
		return pkg.EXIT_INPUT_ERROR
	}

	printRecord(record, opts)
	return exitCode(summary)
}

func runBatch(logger *zap.Logger, pattern string, opts benchmark.Options, factory oracle.Factory) int {
	instances, err := benchmark.ResolveGlob(pattern, companionDirForPattern(pattern))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return pkg.EXIT_INPUT_ERROR
	}

	fmt.Printf("Found %d hypergraph files\n", len(instances))
	fmt.Printf("Settings: k=%d, epsilon=%g, threads=%d, preset=%s, convention=%s\n",
		opts.Parts, opts.Epsilon, opts.Threads, opts.Preset, opts.Convention)
	fmt.Println("Objective: connectivity (lambda-1 metric)")
	fmt.Println(strings.Repeat("=", 70))

	runner, err := benchmark.NewRunner(opts, factory, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return pkg.EXIT_INPUT_ERROR
	}

	records, summary, err := runner.Run(context.Background(), instances)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return pkg.EXIT_INPUT_ERROR
	}

	for _, record := range records {
		fmt.Printf("\n%s:\n", record.ID)
		if record.Err != nil {
			fmt.Printf("  ERROR: %v\n", record.Err)
			continue
		}
		printRecord(record, opts)
	}

	printSummary(summary)
	return exitCode(summary)
}

func printRecord(r *benchmark.ComparisonRecord, opts benchmark.Options) {
	fmt.Printf("  Nodes: %d, Hyperedges: %d\n", r.NumNodes, r.NumHyperedges)

	if r.Baseline.Valid() {
		fmt.Printf("  Baseline (%s): conn=%d, time=%.2fs, %s\n",
			opts.Preset, r.Baseline.KM1, r.Baseline.Seconds, r.Baseline.Balance)
	} else {
		fmt.Printf("  Baseline: ERROR: %v\n", r.Baseline.Err)
	}

	if r.Candidate.Valid() {
		timeStr := ""
		if r.Candidate.Timed {
			timeStr = fmt.Sprintf(", time=%.2fs", r.Candidate.Seconds)
		}
		fmt.Printf("  Candidate: conn=%d%s, %s\n", r.Candidate.KM1, timeStr, r.Candidate.Balance)
	} else {
		fmt.Printf("  Candidate: ERROR: %v\n", r.Candidate.Err)
	}

	if r.Compared() {
		fmt.Printf("  Diff: %+d (%+.2f%%) -> %s\n",
			r.Candidate.KM1-r.Baseline.KM1, r.GapPercent, r.Winner)
	}
}

func printSummary(s benchmark.AggregateSummary) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("SUMMARY")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Instances: %d (compared: %d, failed: %d)\n", s.Instances, s.Compared, s.Failed)
	fmt.Printf("Record: %d wins / %d ties / %d losses\n", s.Wins, s.Ties, s.Losses)
	fmt.Printf("Gap: mean=%+.2f%%, median=%+.2f%% (negative = candidate better)\n",
		s.MeanGapPercent, s.MedianGapPercent)
	fmt.Printf("Total KM1 - candidate: %d, baseline: %d\n", s.TotalCandidateKM1, s.TotalBaselineKM1)
	fmt.Printf("Avg baseline time: %.2fs\n", s.MeanBaselineSeconds)
	if s.CandidateTimed > 0 {
		fmt.Printf("Avg candidate time: %.2fs (speedup: %.1fx)\n", s.MeanCandidateSeconds, s.Speedup)
	}
	if s.CandidateInfeasible > 0 || s.CandidateInvalid > 0 {
		fmt.Printf("WARNING: %d candidate partitions INFEASIBLE, %d invalid\n",
			s.CandidateInfeasible, s.CandidateInvalid)
	} else {
		fmt.Println("All candidate partitions are FEASIBLE")
	}
	if s.BaselineInfeasible > 0 || s.BaselineInvalid > 0 {
		fmt.Printf("WARNING: %d baseline partitions INFEASIBLE, %d invalid\n",
			s.BaselineInfeasible, s.BaselineInvalid)
	}
}

func exitCode(s benchmark.AggregateSummary) int {
	if s.CandidateInfeasible > 0 || s.CandidateInvalid > 0 ||
		s.BaselineInfeasible > 0 || s.BaselineInvalid > 0 {
		return pkg.EXIT_INFEASIBLE
	}
	if s.Failed > 0 {
		return pkg.EXIT_INPUT_ERROR
	}
	return pkg.EXIT_OK
}

func companionDir(hgrPath string) string {
	if *partitionDir != "" {
		return *partitionDir
	}
	return filepath.Dir(hgrPath)
}

func companionDirForPattern(pattern string) string {
	if *partitionDir != "" {
		return *partitionDir
	}
	return filepath.Dir(pattern)
}
