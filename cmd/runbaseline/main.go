package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/hypereval/pkg"
	"github.com/lintang-b-s/hypereval/pkg/benchmark"
	"github.com/lintang-b-s/hypereval/pkg/hgrparser"
	log "github.com/lintang-b-s/hypereval/pkg/logger"
	"github.com/lintang-b-s/hypereval/pkg/oracle"
)

var (
	parts     = flag.Int("k", pkg.DEFAULT_NUM_PARTS, "number of parts")
	epsilon   = flag.Float64("e", pkg.DEFAULT_EPSILON, "balance epsilon")
	threads   = flag.Int("t", 16, "oracle threads")
	preset    = flag.String("p", "highest_quality", "preset: default|quality|highest_quality")
	oracleBin = flag.String("oracle-bin", "MtKaHyPar", "baseline partitioner binary")
)

func main() {
	flag.Parse()

	logger, err := log.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "usage: runbaseline [flags] <hgr_folder> <output_folder>")
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}
	hgrDir, outDir := flag.Arg(0), flag.Arg(1)

	presetVal, err := oracle.ParsePreset(*preset)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}

	instances, err := benchmark.ResolveDir(hgrDir, outDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}

	fmt.Printf("Found %d .hgr files in %s\n", len(instances), hgrDir)
	fmt.Printf("Output folder: %s\n", outDir)
	fmt.Printf("Settings: k=%d, epsilon=%g, threads=%d, preset=%s\n", *parts, *epsilon, *threads, presetVal)
	fmt.Println()

	handle, err := oracle.NewMtKaHyPar(*oracleBin, *threads, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}
	defer handle.Close()

	octx, err := handle.Configure(*parts, *epsilon, oracle.OBJECTIVE_KM1, presetVal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}

	totalTime := 0.0
	totalKM1 := 0
	failed := 0

	for i, inst := range instances {
		fmt.Printf("[%d/%d] %s... ", i+1, len(instances), inst.ID)

		hh, err := octx.Load(inst.HgrPath)
		if err != nil {
			fmt.Printf("ERROR: %v\n", err)
			failed++
			continue
		}

		ph, err := hh.Partition()
		if err != nil {
			fmt.Printf("ERROR: %v\n", err)
			failed++
			continue
		}

		km1, err := ph.Connectivity()
		if err != nil {
			fmt.Printf("ERROR: %v\n", err)
			failed++
			continue
		}

		elapsed := ph.PartitionTime().Seconds()

		partitionPath := filepath.Join(outDir, inst.ID+pkg.PARTITION_EXTENSION)
		if err := hgrparser.WritePartitionFile(partitionPath, ph.Labels()); err != nil {
			fmt.Printf("ERROR: %v\n", err)
			failed++
			continue
		}
		timingPath := filepath.Join(outDir, inst.ID+pkg.TIMING_EXTENSION)
		if err := hgrparser.WriteTimingFile(timingPath, elapsed); err != nil {
			fmt.Printf("ERROR: %v\n", err)
			failed++
			continue
		}

		fmt.Printf("KM1=%d, time=%.2fs\n", km1, elapsed)

		totalTime += elapsed
		totalKM1 += km1
	}

	done := len(instances) - failed

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Instances: %d (failed: %d)\n", len(instances), failed)
	fmt.Printf("Total connectivity: %d\n", totalKM1)
	if done > 0 {
		fmt.Printf("Average connectivity: %.1f\n", float64(totalKM1)/float64(done))
		fmt.Printf("Total time: %.2fs\n", totalTime)
		fmt.Printf("Average time: %.2fs\n", totalTime/float64(done))
	}

	if failed > 0 {
		os.Exit(pkg.EXIT_INPUT_ERROR)
	}
	os.Exit(pkg.EXIT_OK)
}
