package hgrparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lintang-b-s/hypereval/pkg/util"
)

// ReadPartitionFile reads one non-negative part label per non-blank line,
// in node order.
func ReadPartitionFile(path string) ([]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrMissingInput, "cannot read file: %s", path)
	}
	defer f.Close()

	return ReadPartition(f)
}

func ReadPartition(r io.Reader) ([]int32, error) {
	br := bufio.NewReader(r)
	labels := make([]int32, 0)

	lineNo := 0
	for {
		line, err := util.ReadLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		lineNo++

		ff := util.Fields(line)
		if len(ff) == 0 {
			continue
		}

		label, err := strconv.Atoi(ff[0])
		if err != nil || label < 0 {
			return nil, util.WrapErrorf(err, util.ErrParse,
				"line %d: %q is not a non-negative part label", lineNo, line)
		}
		labels = append(labels, int32(label))
	}

	return labels, nil
}

// WritePartitionFile writes one part label per line, node order, the format
// every partitioner in this toolchain exchanges.
func WritePartitionFile(path string, labels []int32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	for _, label := range labels {
		_, err := fmt.Fprintf(w, "%d\n", label)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteTimingFile writes the elapsed-seconds companion next to a partition.
func WriteTimingFile(path string, elapsedSeconds float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%.3f\n", elapsedSeconds)
	return err
}

// ReadTimingFile reads the elapsed-seconds companion. An absent file is not
// a fault: timings are optional, ok reports whether one was found.
func ReadTimingFile(path string) (seconds float64, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	line, err := util.ReadLine(br)
	if err != nil {
		return 0, false, util.WrapErrorf(err, util.ErrParse, "%s: empty timing file", path)
	}

	ff := util.Fields(line)
	if len(ff) == 0 {
		return 0, false, util.WrapErrorf(nil, util.ErrParse, "%s: empty timing file", path)
	}
	seconds, err = strconv.ParseFloat(ff[0], 64)
	if err != nil {
		return 0, false, util.WrapErrorf(err, util.ErrParse, "%s: invalid timing value %q", path, ff[0])
	}

	return seconds, true, nil
}
