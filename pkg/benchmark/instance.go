package benchmark

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lintang-b-s/hypereval/pkg"
)

// Instance names one benchmark case: a hypergraph file plus its companion
// artifacts. The stem of the hypergraph filename is the stable key shared by
// hypergraph, partition and timing file; companions are resolved here once
// instead of rewriting filenames all over the tools.
type Instance struct {
	ID            string
	HgrPath       string
	PartitionPath string
	TimingPath    string
}

func stem(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".bz2")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ResolveCompanion builds the instance for one hypergraph file, looking up
// its partition and timing companions in partitionDir by shared stem.
func ResolveCompanion(hgrPath, partitionDir string) Instance {
	id := stem(hgrPath)
	return Instance{
		ID:            id,
		HgrPath:       hgrPath,
		PartitionPath: filepath.Join(partitionDir, id+pkg.PARTITION_EXTENSION),
		TimingPath:    filepath.Join(partitionDir, id+pkg.TIMING_EXTENSION),
	}
}

// ResolveGlob expands a hypergraph glob pattern into instances, sorted by id
// so batch output is deterministic.
func ResolveGlob(pattern, partitionDir string) ([]Instance, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files found matching: %s", pattern)
	}

	sort.Strings(matches)

	instances := make([]Instance, 0, len(matches))
	for _, m := range matches {
		instances = append(instances, ResolveCompanion(m, partitionDir))
	}
	return instances, nil
}

// ResolveDir pairs every .hgr file in hgrDir with its companions in
// partitionDir.
func ResolveDir(hgrDir, partitionDir string) ([]Instance, error) {
	return ResolveGlob(filepath.Join(hgrDir, "*"+pkg.HGR_EXTENSION), partitionDir)
}
