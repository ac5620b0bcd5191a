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
	verbose    = flag.Bool("v", false, "show per-instance details")
)

func main() {
	flag.Parse()

	logger, err := log.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "usage: evalpartitions [flags] <hgr_folder> <partition_folder>")
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}
	hgrDir, partitionDir := flag.Arg(0), flag.Arg(1)

	opts := benchmark.DefaultOptions()
	opts.Parts = *parts
	opts.Epsilon = *epsilon
	opts.Convention = *convention
	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}

	instances, err := benchmark.ResolveDir(hgrDir, partitionDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}

	fmt.Println("Evaluating partitions")
	fmt.Printf("  HGR folder: %s\n", hgrDir)
	fmt.Printf("  Partition folder: %s\n", partitionDir)
	fmt.Printf("  k=%d, epsilon=%g, convention=%s\n", opts.Parts, opts.Epsilon, opts.Convention)
	fmt.Println()

	parser := hgrparser.NewHGRParser()

	totalKM1 := 0
	evaluated, validCount, feasibleCount, missing := 0, 0, 0, 0

	for _, inst := range instances {
		hg, err := parser.ParseFile(inst.HgrPath, logger)
		if err != nil {
			fmt.Printf("ERROR: %s - %v\n", inst.ID, err)
			missing++
			continue
		}

		side := benchmark.EvaluateSideFiles(hg, inst.PartitionPath, inst.TimingPath, opts)
		if side.Err != nil {
			fmt.Printf("INVALID: %s - %v\n", inst.ID, side.Err)
			missing++
			continue
		}

		evaluated++
		validCount++
		if side.Balance.Feasible {
			feasibleCount++
		}
		totalKM1 += side.KM1

		if *verbose {
			fmt.Printf("%s: KM1=%d, %s\n", inst.ID, side.KM1, side.Balance)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Instances evaluated: %d\n", evaluated)
	fmt.Printf("Valid partitions: %d\n", validCount)
	fmt.Printf("Feasible partitions: %d\n", feasibleCount)
	fmt.Printf("Total connectivity (KM1): %d\n", totalKM1)
	if evaluated > 0 {
		fmt.Printf("Average connectivity: %.1f\n", float64(totalKM1)/float64(evaluated))
	}
	fmt.Println()

	if feasibleCount == evaluated && missing == 0 {
		fmt.Println("All partitions are FEASIBLE")
		os.Exit(pkg.EXIT_OK)
	}

	if feasibleCount < evaluated {
		fmt.Printf("WARNING: %d partitions are INFEASIBLE\n", evaluated-feasibleCount)
		os.Exit(pkg.EXIT_INFEASIBLE)
	}
	os.Exit(pkg.EXIT_INPUT_ERROR)
}
