package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lintang-b-s/hypereval/pkg"
	"github.com/lintang-b-s/hypereval/pkg/benchmark"
	"github.com/lintang-b-s/hypereval/pkg/hgrparser"
	log "github.com/lintang-b-s/hypereval/pkg/logger"
)

var (
	parts      = flag.Int("k", pkg.DEFAULT_NUM_PARTS, "number of parts")
	epsilon    = flag.Float64("e", pkg.DEFAULT_EPSILON, "balance epsilon")
	convention = flag.String("convention", "proportional", "balance convention: proportional|ceil_scale")
)

// compares two folders of already-materialized partitions (candidate vs
// baseline) by shared instance stem, without invoking the oracle.
func main() {
	flag.Parse()

	logger, err := log.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if flag.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "usage: compareresults [flags] <hgr_folder> <candidate_folder> <baseline_folder>")
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}
	hgrDir, candidateDir, baselineDir := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	opts := benchmark.DefaultOptions()
	opts.Parts = *parts
	opts.Epsilon = *epsilon
	opts.Convention = *convention
	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}

	candidates, err := benchmark.ResolveDir(hgrDir, candidateDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}

	parser := hgrparser.NewHGRParser()
	records := make([]*benchmark.ComparisonRecord, 0, len(candidates))

	for _, inst := range candidates {
		baselineInst := benchmark.ResolveCompanion(inst.HgrPath, baselineDir)

		hg, err := parser.ParseFile(inst.HgrPath, logger)
		if err != nil {
			records = append(records, &benchmark.ComparisonRecord{ID: inst.ID, Err: err})
			continue
		}

		candidate := benchmark.EvaluateSideFiles(hg, inst.PartitionPath, inst.TimingPath, opts)
		baseline := benchmark.EvaluateSideFiles(hg, baselineInst.PartitionPath, baselineInst.TimingPath, opts)

		records = append(records, benchmark.NewComparisonRecord(inst.ID, hg, candidate, baseline))
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 90))
	fmt.Println("COMPARISON: candidate vs baseline")
	fmt.Println(strings.Repeat("=", 90))
	fmt.Printf("%-30s %12s %12s %10s %10s\n", "Instance", "cand KM1", "base KM1", "winner", "gap")
	fmt.Println(strings.Repeat("-", 90))

	for _, r := range records {
		name := r.ID
		if len(name) > 28 {
			name = name[len(name)-28:]
		}
		if !r.Compared() {
			fmt.Printf("%-30s %s\n", name, "skipped (missing or invalid input)")
			continue
		}
		fmt.Printf("%-30s %12d %12d %10s %9.2f%%\n",
			name, r.Candidate.KM1, r.Baseline.KM1, r.Winner, r.GapPercent)
	}
	fmt.Println(strings.Repeat("-", 90))

	summary := benchmark.Aggregate(records)

	fmt.Println()
	fmt.Println("SUMMARY")
	fmt.Printf("  Instances: %d (compared: %d)\n", summary.Instances, summary.Compared)
	fmt.Printf("  candidate wins: %d/%d\n", summary.Wins, summary.Compared)
	fmt.Printf("  baseline wins: %d/%d\n", summary.Losses, summary.Compared)
	fmt.Printf("  ties: %d/%d\n", summary.Ties, summary.Compared)
	fmt.Println()
	fmt.Printf("  Total KM1 - candidate: %d, baseline: %d\n",
		summary.TotalCandidateKM1, summary.TotalBaselineKM1)
	fmt.Printf("  Average gap: %+.2f%% (negative = candidate better)\n", summary.MeanGapPercent)
	fmt.Println()
	fmt.Printf("  Avg time - candidate: %.2fs, baseline: %.2fs\n",
		summary.MeanCandidateSeconds, summary.MeanBaselineSeconds)
	fmt.Printf("  Speedup: %.1fx\n", summary.Speedup)
	fmt.Println()

	if summary.CandidateInfeasible > 0 || summary.CandidateInvalid > 0 ||
		summary.BaselineInfeasible > 0 || summary.BaselineInvalid > 0 {
		os.Exit(pkg.EXIT_INFEASIBLE)
	}
	if summary.Failed > 0 || summary.Compared == 0 {
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}
	os.Exit(pkg.EXIT_OK)
}
