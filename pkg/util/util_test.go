package util

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("open /x: no such file")
	err := WrapErrorf(orig, ErrMissingInput, "hypergraph %s unreadable", "x.hgr")

	if !errors.Is(err, ErrMissingInput) {
		t.Error("wrapped error should match its code")
	}
	if errors.Is(err, ErrParse) {
		t.Error("wrapped error must not match other codes")
	}
	if !errors.Is(errors.Unwrap(err), orig) {
		t.Error("Unwrap should expose the original error")
	}
	if got := err.Error(); !strings.Contains(got, "x.hgr unreadable") || !strings.Contains(got, "no such file") {
		t.Errorf("message should carry both layers, got %q", got)
	}
}

func TestWrapErrorfNilOrig(t *testing.T) {
	err := WrapErrorf(nil, ErrShape, "expected %d labels", 10)
	if err.Error() != "expected 10 labels" {
		t.Errorf("message = %q", err.Error())
	}
	if !errors.Is(err, ErrShape) {
		t.Error("code should still match without an original error")
	}
}

func TestReadLine(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("first\r\nsecond\nlast-no-newline"))

	for i, want := range []string{"first", "second", "last-no-newline"} {
		line, err := ReadLine(br)
		if err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if line != want {
			t.Errorf("line %d = %q, want %q", i, line, want)
		}
	}

	if _, err := ReadLine(br); !errors.Is(err, io.EOF) {
		t.Errorf("exhausted reader should return EOF, got %v", err)
	}
}

func TestMinMaxG(t *testing.T) {
	if MinG(3, 5) != 3 || MaxG(3, 5) != 5 {
		t.Error("int ordering broken")
	}
	if MinG(2.5, 1.5) != 1.5 || MaxG("a", "b") != "b" {
		t.Error("generic ordering broken")
	}
}
