// Package iox provides an unbounded in-memory byte pipe.
//
// A worker must reach its terminal state before its parent starts merging,
// which means its whole sorted half has to fit in its output channel. An
// io.Pipe is fully synchronous and cannot satisfy that protocol, so this
// pipe buffers writes without bound and blocks only the reader.
package iox

import (
	"bytes"
	"io"
	"sync"
)

// Pipe is a FIFO byte stream with a non-blocking writer and a blocking
// reader. One writer, one reader; neither end is safe for concurrent use
// with itself.
type Pipe struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    bytes.Buffer
	closed bool
	werr   error // reported to the reader once the buffer drains
}

// NewPipe returns an open Pipe
func NewPipe() *Pipe {
	p := &Pipe{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Write appends b to the pipe; it never blocks
func (p *Pipe) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, io.ErrClosedPipe
	}
	n, err := p.buf.Write(b)
	p.cond.Broadcast()
	return n, err
}

// Read blocks until data is available or the write side is closed.
// After the buffer drains on a closed pipe it returns the close error,
// io.EOF for a clean Close
func (p *Pipe) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.buf.Len() == 0 && !p.closed {
		p.cond.Wait()
	}
	if p.buf.Len() == 0 {
		if p.werr != nil {
			return 0, p.werr
		}
		return 0, io.EOF
	}
	return p.buf.Read(b)
}

// Close marks the write side done; the reader sees io.EOF after draining
func (p *Pipe) Close() error { return p.CloseWithError(nil) }

// CloseWithError marks the write side done with err; the reader sees err
// after draining (io.EOF when err is nil). Subsequent closes are no-ops
func (p *Pipe) CloseWithError(err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.werr = err
	p.cond.Broadcast()
	return nil
}
