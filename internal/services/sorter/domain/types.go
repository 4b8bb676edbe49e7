// Package domain holds the core data structures and ports for the sorter
package domain

import (
	"pipesort/internal/platform/validate"
)

// DefaultStep is the default capacity increment for a Batch
const DefaultStep = 10

// Spawn modes: isolated goroutines joined by byte pipes, or re-executed
// child processes joined by OS pipes
const (
	SpawnGoroutine = "goroutine"
	SpawnProcess   = "process"
)

// Options are the runtime knobs for one sorter tree
type Options struct {
	// Spawn selects the worker isolation model
	Spawn string `env:"PIPESORT_SPAWN" validate:"oneof=goroutine process"`

	// Step is the fixed capacity increment for ingestion batches
	Step int `env:"PIPESORT_STEP" validate:"min=1"`

	// Collate optionally switches comparison to Unicode collation for a
	// BCP-47 locale; empty keeps raw byte order
	Collate string `env:"PIPESORT_COLLATE" validate:"omitempty,bcp47_language_tag"`
}

// DefaultOptions returns the options used when the environment says nothing
func DefaultOptions() Options {
	return Options{Spawn: SpawnGoroutine, Step: DefaultStep}
}

// Validate checks the options against their constraints
func (o Options) Validate() error { return validate.Struct(o) }

// Batch is the ordered in-memory collection of records awaiting split or
// direct emission. Capacity starts at one step and grows by that fixed
// increment, never geometrically
type Batch struct {
	lines [][]byte
	step  int
}

// NewBatch creates an empty Batch with the given growth step
func NewBatch(step int) *Batch {
	if step <= 0 {
		step = DefaultStep
	}
	return &Batch{lines: make([][]byte, 0, step), step: step}
}

// Append adds one record to the end of the batch, growing capacity by the
// fixed step when full
func (b *Batch) Append(line []byte) {
	if len(b.lines) == cap(b.lines) {
		grown := make([][]byte, len(b.lines), cap(b.lines)+b.step)
		copy(grown, b.lines)
		b.lines = grown
	}
	b.lines = append(b.lines, line)
}

// Len returns the number of records in the batch
func (b *Batch) Len() int { return len(b.lines) }

// Cap returns the current capacity of the batch
func (b *Batch) Cap() int { return cap(b.lines) }

// Line returns the i-th record
func (b *Batch) Line(i int) []byte { return b.lines[i] }

// Split hands out the two disjoint halves at m = n/2; the lower half gets
// the smaller or equal share and their concatenation is the whole batch
func (b *Batch) Split() (lower, upper [][]byte) {
	m := len(b.lines) / 2
	return b.lines[:m], b.lines[m:]
}
