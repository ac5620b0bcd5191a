package hgrparser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/hypereval/pkg/datastructure"
	"github.com/lintang-b-s/hypereval/pkg/util"
	"go.uber.org/zap"
)

/*
.hgr format (hMETIS style):

	line 1:                  <numHyperedges> <numNodes>
	line 2..numHyperedges+1: whitespace-separated 1-based node ids of one
	                         hyperedge, zero or more of them

A line with zero tokens is a legal empty hyperedge. Fewer lines than the
declared hyperedge count is a parse error.
*/
type HGRParser struct {
}

func NewHGRParser() *HGRParser {
	return &HGRParser{}
}

// ParseFile parses path into an in-memory hypergraph. Files ending in .bz2
// are decompressed on the fly.
func (p *HGRParser) ParseFile(path string, logger *zap.Logger) (*datastructure.Hypergraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrMissingInput, "cannot read file: %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrParse, "cannot open bzip2 stream: %s", path)
		}
		defer bz.Close()
		r = bz
	}

	hg, err := p.Parse(r)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrParse, "%s", path)
	}

	if logger != nil {
		logger.Debug("parsed hypergraph", zap.String("file", path),
			zap.Int("nodes", hg.NumNodes()), zap.Int("hyperedges", hg.NumHyperedges()),
			zap.Int("pins", hg.TotalPins()))
	}

	return hg, nil
}

// Parse reads the .hgr stream line at a time, never materializing more than
// the CSR arrays themselves. Hyperedge counts in the hundreds of thousands
// with millions of pins stay linear in the input size.
func (p *HGRParser) Parse(r io.Reader) (*datastructure.Hypergraph, error) {
	br := bufio.NewReader(r)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, fmt.Errorf("empty .hgr file")
	}

	ff := util.Fields(line)
	if len(ff) < 2 {
		return nil, fmt.Errorf("invalid .hgr header: %q", line)
	}

	numHyperedges, err := strconv.Atoi(ff[0])
	if err != nil {
		return nil, fmt.Errorf("invalid hyperedge count %q: %v", ff[0], err)
	}
	numNodes, err := strconv.Atoi(ff[1])
	if err != nil {
		return nil, fmt.Errorf("invalid node count %q: %v", ff[1], err)
	}
	if numHyperedges < 0 || numNodes < 0 {
		return nil, fmt.Errorf("invalid .hgr header: %q", line)
	}

	edgeOffsets := make([]int32, 1, numHyperedges+1)
	edgeNodes := make([]int32, 0)

	for e := 0; e < numHyperedges; e++ {
		line, err = util.ReadLine(br)
		if err != nil {
			return nil, fmt.Errorf("expected %d hyperedges, found %d", numHyperedges, e)
		}

		for _, tok := range util.Fields(line) {
			node, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("hyperedge %d: invalid node id %q: %v", e, tok, err)
			}
			if node < 1 || node > numNodes {
				return nil, fmt.Errorf("hyperedge %d: node id %d outside [1, %d]", e, node, numNodes)
			}
			edgeNodes = append(edgeNodes, int32(node-1)) // 0-indexed internally
		}
		edgeOffsets = append(edgeOffsets, int32(len(edgeNodes)))
	}

	return datastructure.NewHypergraph(numNodes, numHyperedges, edgeOffsets, edgeNodes), nil
}

// ReadHeader reads only the first line of an .hgr file, cheap metadata probe
// for batch listings.
func (p *HGRParser) ReadHeader(path string) (numHyperedges, numNodes int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, util.WrapErrorf(err, util.ErrMissingInput, "cannot read file: %s", path)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	line, err := util.ReadLine(br)
	if err != nil {
		return 0, 0, util.WrapErrorf(err, util.ErrParse, "%s: empty .hgr file", path)
	}

	ff := util.Fields(line)
	if len(ff) < 2 {
		return 0, 0, util.WrapErrorf(nil, util.ErrParse, "%s: invalid .hgr header: %q", path, line)
	}
	numHyperedges, err = strconv.Atoi(ff[0])
	if err != nil {
		return 0, 0, util.WrapErrorf(err, util.ErrParse, "%s: invalid hyperedge count", path)
	}
	numNodes, err = strconv.Atoi(ff[1])
	if err != nil {
		return 0, 0, util.WrapErrorf(err, util.ErrParse, "%s: invalid node count", path)
	}
	return numHyperedges, numNodes, nil
}

// WriteHGR writes the hypergraph back in .hgr format, node ids 1-based.
func WriteHGR(path string, hg *datastructure.Hypergraph) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	_, err = fmt.Fprintf(w, "%d %d\n", hg.NumHyperedges(), hg.NumNodes())
	if err != nil {
		return err
	}

	for e := 0; e < hg.NumHyperedges(); e++ {
		nodes := hg.EdgeNodes(e)
		for i, node := range nodes {
			if i > 0 {
				fmt.Fprintf(w, " ")
			}
			_, err = fmt.Fprintf(w, "%d", node+1)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}
