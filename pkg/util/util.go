package util

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/constraints"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Is(target error) bool {
	return e.code == target
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

var (
	ErrParse        = errors.New("malformed input file")
	ErrShape        = errors.New("partition length does not match node count")
	ErrRange        = errors.New("part label out of range")
	ErrOracle       = errors.New("baseline oracle failed")
	ErrMissingInput = errors.New("expected input file is missing")
)

func ReadLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || len(line) == 0) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func Fields(s string) []string {
	return strings.Fields(s)
}

func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func MinG[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func MaxG[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func StopConcurrentOperation(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func AssertPanic(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
