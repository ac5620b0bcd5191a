package hgrparser

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/hypereval/pkg/util"
)

func TestReadPartition(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    []int32
		wantErr bool
	}{
		{
			name:  "labels in node order",
			input: "0\n1\n0\n1\n",
			want:  []int32{0, 1, 0, 1},
		},
		{
			name:  "blank lines are skipped",
			input: "0\n\n1\n\n\n2\n",
			want:  []int32{0, 1, 2},
		},
		{
			name:  "empty input",
			input: "",
			want:  []int32{},
		},
		{
			name:    "negative label",
			input:   "0\n-1\n",
			wantErr: true,
		},
		{
			name:    "non-integer label",
			input:   "0\nabc\n",
			wantErr: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadPartition(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got none")
				}
				if !errors.Is(err, util.ErrParse) {
					t.Errorf("error should be ErrParse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d labels, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("label %d = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPartitionRoundTrip(t *testing.T) {
	labels := []int32{0, 3, 1, 2, 0, 0, 63, 1}

	path := filepath.Join(t.TempDir(), "roundtrip.partition")
	if err := WritePartitionFile(path, labels); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := ReadPartitionFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if len(got) != len(labels) {
		t.Fatalf("got %d labels, want %d", len(got), len(labels))
	}
	for i := range labels {
		if got[i] != labels[i] {
			t.Errorf("label %d = %d, want %d", i, got[i], labels[i])
		}
	}
}

func TestReadPartitionFileMissing(t *testing.T) {
	_, err := ReadPartitionFile(filepath.Join(t.TempDir(), "nope.partition"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, util.ErrMissingInput) {
		t.Errorf("error should be ErrMissingInput, got %v", err)
	}
}

func TestTimingFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "instance.time")
	if err := WriteTimingFile(path, 12.3456); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	seconds, ok, err := ReadTimingFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !ok {
		t.Fatal("timing should have been found")
	}
	if seconds < 12.345 || seconds > 12.347 {
		t.Errorf("seconds = %f, want ~12.346", seconds)
	}

	// absence degrades to unknown timing, not a fault
	_, ok, err = ReadTimingFile(filepath.Join(dir, "absent.time"))
	if err != nil {
		t.Fatalf("absent timing file must not be an error, got %v", err)
	}
	if ok {
		t.Error("absent timing file reported as found")
	}
}
