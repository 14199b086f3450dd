package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	// ErrTruncated is returned when the input ends before all declared values are read.
	ErrTruncated = errors.New("input truncated")
	// ErrNegativeCount is returned when the element or request count is negative.
	ErrNegativeCount = errors.New("negative count")
	// ErrIndexOutOfRange is returned when a merge request names an element outside [1, n].
	ErrIndexOutOfRange = errors.New("index out of range")
)

// maxPrealloc caps the capacity reserved from a declared count.
const maxPrealloc = 1 << 16

// Request is a single merge of Source into Destination. Indices are 0-based.
type Request struct {
	Destination int
	Source      int
}

// Problem is a parsed merge workload: initial element weights and the
// ordered merge requests to apply.
type Problem struct {
	Weights  []int64
	Requests []Request
}

// tokenReader yields whitespace-separated integers.
type tokenReader struct {
	sc *bufio.Scanner
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (t *tokenReader) next(what string) (int64, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, fmt.Errorf("read %s: %w", what, err)
		}
		return 0, fmt.Errorf("read %s: %w", what, ErrTruncated)
	}
	v, err := strconv.ParseInt(t.sc.Text(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", what, err)
	}
	return v, nil
}

// Read parses a problem: the element count n and request count m, then n
// weights, then m pairs of 1-based destination and source indices.
// Indices are validated and converted to 0-based.
func Read(r io.Reader) (*Problem, error) {
	tr := newTokenReader(r)

	n, err := tr.next("element count")
	if err != nil {
		return nil, err
	}
	m, err := tr.next("request count")
	if err != nil {
		return nil, err
	}
	if n < 0 || m < 0 {
		return nil, fmt.Errorf("n=%d m=%d: %w", n, m, ErrNegativeCount)
	}

	// Counts are untrusted; grow as values arrive.
	weights := make([]int64, 0, min(n, maxPrealloc))
	for i := int64(0); i < n; i++ {
		w, err := tr.next(fmt.Sprintf("weight %d", i+1))
		if err != nil {
			return nil, err
		}
		weights = append(weights, w)
	}

	requests := make([]Request, 0, min(m, maxPrealloc))
	for i := int64(0); i < m; i++ {
		dst, err := tr.next(fmt.Sprintf("request %d destination", i+1))
		if err != nil {
			return nil, err
		}
		src, err := tr.next(fmt.Sprintf("request %d source", i+1))
		if err != nil {
			return nil, err
		}
		if dst < 1 || dst > n {
			return nil, fmt.Errorf("request %d destination %d: %w", i+1, dst, ErrIndexOutOfRange)
		}
		if src < 1 || src > n {
			return nil, fmt.Errorf("request %d source %d: %w", i+1, src, ErrIndexOutOfRange)
		}
		requests = append(requests, Request{Destination: int(dst - 1), Source: int(src - 1)})
	}

	return &Problem{Weights: weights, Requests: requests}, nil
}

// Validate checks that every request refers to an element of the universe.
func (p *Problem) Validate() error {
	n := len(p.Weights)
	for i, r := range p.Requests {
		if r.Destination < 0 || r.Destination >= n {
			return fmt.Errorf("request %d destination %d: %w", i+1, r.Destination+1, ErrIndexOutOfRange)
		}
		if r.Source < 0 || r.Source >= n {
			return fmt.Errorf("request %d source %d: %w", i+1, r.Source+1, ErrIndexOutOfRange)
		}
	}
	return nil
}
