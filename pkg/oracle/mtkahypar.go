package oracle

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lintang-b-s/hypereval/pkg/datastructure"
	"github.com/lintang-b-s/hypereval/pkg/evaluator"
	"github.com/lintang-b-s/hypereval/pkg/hgrparser"
	"github.com/lintang-b-s/hypereval/pkg/util"
	"go.uber.org/zap"
)

// MtKaHyPar drives the Mt-KaHyPar command-line binary as the baseline
// oracle. One binary invocation per Partition call; the handle itself only
// carries configuration plus a scratch directory for partition output, which
// is what makes it cheap to hold one handle per worker.
type MtKaHyPar struct {
	binPath    string
	threads    int
	scratchDir string
	logger     *zap.Logger
}

func NewMtKaHyPar(binPath string, threads int, logger *zap.Logger) (*MtKaHyPar, error) {
	if binPath == "" {
		binPath = "MtKaHyPar"
	}

	resolved, err := exec.LookPath(binPath)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrOracle, "mtkahypar binary not found: %s", binPath)
	}

	scratchDir, err := os.MkdirTemp("", "hypereval-mtkahypar-")
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrOracle, "cannot create scratch dir")
	}

	if threads < 1 {
		threads = 1
	}

	return &MtKaHyPar{
		binPath:    resolved,
		threads:    threads,
		scratchDir: scratchDir,
		logger:     logger,
	}, nil
}

// BinaryFactory returns a Factory so every batch worker constructs its own
// handle. A single shared handle invoked concurrently is not supported.
func BinaryFactory(binPath string, logger *zap.Logger) Factory {
	return func(threads int) (Oracle, error) {
		return NewMtKaHyPar(binPath, threads, logger)
	}
}

func (mt *MtKaHyPar) Configure(k int, epsilon float64, objective Objective, preset Preset) (Context, error) {
	if k < 2 {
		return nil, util.WrapErrorf(nil, util.ErrOracle, "invalid number of parts: %d", k)
	}

	return &mtContext{
		oracle:    mt,
		k:         k,
		epsilon:   epsilon,
		objective: objective,
		preset:    preset,
	}, nil
}

func (mt *MtKaHyPar) Close() error {
	return os.RemoveAll(mt.scratchDir)
}

type mtContext struct {
	oracle    *MtKaHyPar
	k         int
	epsilon   float64
	objective Objective
	preset    Preset
}

func (c *mtContext) Load(path string) (HypergraphHandle, error) {
	start := time.Now()
	_, numNodes, err := hgrparser.NewHGRParser().ReadHeader(path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrOracle, "cannot load hypergraph: %s", path)
	}

	return &mtHypergraph{
		ctx:      c,
		path:     path,
		numNodes: numNodes,
		loadTime: time.Since(start),
	}, nil
}

type mtHypergraph struct {
	ctx      *mtContext
	path     string
	numNodes int
	loadTime time.Duration
}

func (h *mtHypergraph) NumNodes() int {
	return h.numNodes
}

func (h *mtHypergraph) Partition() (PartitionedHandle, error) {
	mt := h.ctx.oracle

	outDir, err := os.MkdirTemp(mt.scratchDir, "run-")
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrOracle, "cannot create output dir")
	}
	defer os.RemoveAll(outDir)

	args := []string{
		"-h", h.path,
		"--preset-type=" + h.ctx.preset.String(),
		"-t", strconv.Itoa(mt.threads),
		"-k", strconv.Itoa(h.ctx.k),
		"-e", strconv.FormatFloat(h.ctx.epsilon, 'f', -1, 64),
		"-o", h.ctx.objective.String(),
		"--write-partition-file=true",
		"--partition-output-folder=" + outDir,
	}

	cmd := exec.Command(mt.binPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrOracle,
			"mtkahypar failed on %s: %s", h.path, firstLine(stderr.String()))
	}

	labels, err := readPartitionOutput(outDir)
	if err != nil {
		return nil, err
	}
	if len(labels) != h.numNodes {
		return nil, util.WrapErrorf(nil, util.ErrOracle,
			"mtkahypar wrote %d labels for %d nodes", len(labels), h.numNodes)
	}

	km1, km1Found := scanReportedKM1(stdout.String())

	if mt.logger != nil {
		mt.logger.Debug("mtkahypar run finished", zap.String("file", h.path),
			zap.Duration("elapsed", elapsed), zap.Bool("km1_reported", km1Found))
	}

	return &mtPartitioned{
		hgrPath:       h.path,
		labels:        labels,
		km1:           km1,
		km1Known:      km1Found,
		loadTime:      h.loadTime,
		partitionTime: elapsed,
	}, nil
}

// readPartitionOutput picks up the single partition file mtkahypar wrote into
// the scratch output folder; the exact file name encodes k, epsilon and seed
// and is not worth reconstructing.
func readPartitionOutput(outDir string) ([]int32, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrOracle, "cannot read output dir")
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		labels, err := hgrparser.ReadPartitionFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrOracle, "unreadable partition output: %s", entry.Name())
		}
		return labels, nil
	}

	return nil, util.WrapErrorf(nil, util.ErrOracle, "mtkahypar produced no partition file")
}

// scanReportedKM1 pulls the km1 objective value out of the mtkahypar report,
// lines of the shape "km1 = 12345".
func scanReportedKM1(out string) (int, bool) {
	for _, line := range strings.Split(out, "\n") {
		ff := util.Fields(line)
		for i := 0; i+2 < len(ff); i++ {
			if ff[i] == "km1" && ff[i+1] == "=" {
				if v, err := strconv.Atoi(ff[i+2]); err == nil {
					return v, true
				}
			}
		}
	}
	return 0, false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

type mtPartitioned struct {
	hgrPath       string
	labels        []int32
	km1           int
	km1Known      bool
	loadTime      time.Duration
	partitionTime time.Duration
}

// Connectivity returns the km1 the binary reported, falling back to
// recomputing it from the partition when the report format changed.
func (p *mtPartitioned) Connectivity() (int, error) {
	if p.km1Known {
		return p.km1, nil
	}

	hg, err := hgrparser.NewHGRParser().ParseFile(p.hgrPath, nil)
	if err != nil {
		return 0, util.WrapErrorf(err, util.ErrOracle, "cannot recompute baseline km1")
	}
	part, err := datastructure.NewPartition(p.labels, hg.NumNodes(), maxLabelBound(p.labels))
	if err != nil {
		return 0, util.WrapErrorf(err, util.ErrOracle, "baseline partition invalid")
	}

	p.km1 = evaluator.ComputeKM1(hg, part)
	p.km1Known = true
	return p.km1, nil
}

func maxLabelBound(labels []int32) int {
	maxLabel := int32(0)
	for _, l := range labels {
		if l > maxLabel {
			maxLabel = l
		}
	}
	return int(maxLabel) + 1
}

func (p *mtPartitioned) BlockID(node int) int {
	return int(p.labels[node])
}

func (p *mtPartitioned) Labels() []int32 {
	return p.labels
}

func (p *mtPartitioned) LoadTime() time.Duration {
	return p.loadTime
}

func (p *mtPartitioned) PartitionTime() time.Duration {
	return p.partitionTime
}

var _ Oracle = (*MtKaHyPar)(nil)
