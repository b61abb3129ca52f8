// Package session drives networks from line-oriented vector streams:
// one whitespace-delimited vector per line, one tick per vector (or per
// input/target pair in learn mode).
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrLineFormat covers every malformed stream line: wrong token count,
// non-numeric tokens, or a dangling input line at end of a learn
// stream. A format error always aborts the run; skipping a line would
// desynchronize the input/target alternation.
var ErrLineFormat = errors.New("input line format error")

// Scanner reads one numeric vector per line and tracks the 1-based line
// number for error reporting.
type Scanner struct {
	sc   *bufio.Scanner
	line int
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{sc: bufio.NewScanner(r)}
}

// Line returns the number of the last line read.
func (s *Scanner) Line() int { return s.line }

// Next reads the next vector. ok is false on clean end of stream; any
// malformed line or underlying read failure is an error.
func (s *Scanner) Next(arity int) (vec []float64, ok bool, err error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return nil, false, fmt.Errorf("line %d: %w", s.line+1, err)
		}
		return nil, false, nil
	}
	s.line++

	fields := strings.Fields(s.sc.Text())
	if len(fields) != arity {
		return nil, false, fmt.Errorf("%w: line %d: got %d values, want %d", ErrLineFormat, s.line, len(fields), arity)
	}
	vec = make([]float64, len(fields))
	for i, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, false, fmt.Errorf("%w: line %d: bad number %q", ErrLineFormat, s.line, field)
		}
		vec[i] = value
	}
	return vec, true, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
