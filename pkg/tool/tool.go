// Package tool turns a byte stream of newline-delimited JSON into typed
// messages, one completed line at a time.
package tool

import (
	"bytes"
	"fmt"
)

// Tool names.
const (
	CargoCheck   = "cargo-check"
	CargoLibtest = "cargo-libtest"
)

// DecodeFunc decodes one line into a message.
type DecodeFunc[M any] func(line []byte) (M, error)

// Result is one completed line: either a message or the error it produced.
type Result[M any] struct {
	Message M
	Err     error
}

// ParseError reports a line that looked like a record but did not decode.
type ParseError struct {
	Tool string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %v", e.Tool, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Tool is an incremental parser for one input stream. It is not safe for
// concurrent use.
type Tool[M any] struct {
	name    string
	decode  DecodeFunc[M]
	pending []byte
	lines   int
}

// New returns a Tool that decodes lines with decode.
func New[M any](name string, decode DecodeFunc[M]) *Tool[M] {
	return &Tool[M]{name: name, decode: decode}
}

// Name returns the tool name.
func (t *Tool[M]) Name() string { return t.name }

// Pending reports how many bytes of an unterminated line are buffered.
func (t *Tool[M]) Pending() int { return len(t.pending) }

// Feed appends p to the buffered input and returns a result for every line
// it completes, in order. Empty lines are skipped. A line that fails to
// decode yields an error result only when it begins with '{'; any other
// text is dropped.
func (t *Tool[M]) Feed(p []byte) []Result[M] {
	t.pending = append(t.pending, p...)

	var results []Result[M]
	for {
		i := bytes.IndexByte(t.pending, '\n')
		if i < 0 {
			break
		}
		line := t.pending[:i]
		t.pending = t.pending[i+1:]
		t.lines++

		if len(line) == 0 {
			continue
		}
		m, err := t.decode(line)
		if err == nil {
			results = append(results, Result[M]{Message: m})
			continue
		}
		if line[0] == '{' {
			results = append(results, Result[M]{Err: &ParseError{Tool: t.name, Line: t.lines, Err: err}})
		}
	}

	// Compact so the backing array does not grow with the stream.
	if len(t.pending) == 0 {
		t.pending = nil
	} else {
		t.pending = append([]byte(nil), t.pending...)
	}
	return results
}
