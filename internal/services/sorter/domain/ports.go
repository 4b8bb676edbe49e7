package domain

import (
	"context"
	"io"
)

// RunnerPort is the public port exposed by the sorter module
type RunnerPort interface {
	// Run sorts everything read from in onto out
	Run(ctx context.Context, in io.Reader, out io.Writer) error
}

// Handle identifies one spawned worker. The dispatcher owns it for the
// duration of the split: it feeds Input, drains Output during the merge,
// and observes the terminal state through Wait
type Handle struct {
	// ID tags the worker in logs
	ID string

	// Input carries the worker's unsorted half; closing it signals
	// end-of-input
	Input io.WriteCloser

	// Output carries the worker's sorted half
	Output io.Reader

	wait func() error
}

// NewHandle builds a Handle; wait reports the worker's terminal state and
// must be safe to call exactly once
func NewHandle(id string, input io.WriteCloser, output io.Reader, wait func() error) *Handle {
	return &Handle{ID: id, Input: input, Output: output, wait: wait}
}

// Wait blocks until the worker reaches a terminal state and returns its
// outcome; nil means success
func (h *Handle) Wait() error {
	if h.wait == nil {
		return nil
	}
	return h.wait()
}

// Spawner starts one isolated worker running the whole algorithm on fresh
// state, wired to its parent only through the handle's two streams
type Spawner interface {
	Spawn(ctx context.Context) (*Handle, error)
}
