package iox

import (
	"errors"
	"io"
	"testing"
	"time"
)

func TestWriteThenReadThenEOF(t *testing.T) {
	p := NewPipe()
	if _, err := p.Write([]byte("alpha\nbeta\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := io.ReadAll(p)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "alpha\nbeta\n" {
		t.Fatalf("ReadAll = %q", got)
	}

	// drained and closed: io.EOF from now on
	if _, err := p.Read(make([]byte, 1)); err != io.EOF {
		t.Fatalf("Read after drain = %v, want io.EOF", err)
	}
}

func TestWriteNeverBlocks(t *testing.T) {
	p := NewPipe()
	// far beyond any internal chunk size, with no reader attached
	chunk := make([]byte, 1<<20)
	for i := 0; i < 8; i++ {
		if _, err := p.Write(chunk); err != nil {
			t.Fatalf("Write %d: %v", i, err)
		}
	}
	_ = p.Close()
	n, err := io.Copy(io.Discard, p)
	if err != nil || n != 8<<20 {
		t.Fatalf("Copy = %d, %v", n, err)
	}
}

func TestReadBlocksUntilWrite(t *testing.T) {
	p := NewPipe()
	got := make(chan string, 1)
	go func() {
		b := make([]byte, 16)
		n, err := p.Read(b)
		if err != nil {
			got <- "err:" + err.Error()
			return
		}
		got <- string(b[:n])
	}()

	// the reader must still be parked
	select {
	case v := <-got:
		t.Fatalf("Read returned early with %q", v)
	case <-time.After(20 * time.Millisecond):
	}

	if _, err := p.Write([]byte("late")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	select {
	case v := <-got:
		if v != "late" {
			t.Fatalf("Read = %q, want %q", v, "late")
		}
	case <-time.After(time.Second):
		t.Fatalf("Read never woke up")
	}
}

func TestCloseWithErrorAfterDrain(t *testing.T) {
	p := NewPipe()
	boom := errors.New("worker failed")
	if _, err := p.Write([]byte("partial")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_ = p.CloseWithError(boom)

	// buffered data still drains first
	b := make([]byte, 16)
	n, err := p.Read(b)
	if err != nil || string(b[:n]) != "partial" {
		t.Fatalf("Read = %q, %v", b[:n], err)
	}
	if _, err := p.Read(b); err != boom {
		t.Fatalf("Read after drain = %v, want %v", err, boom)
	}
}

func TestWriteAfterClose(t *testing.T) {
	p := NewPipe()
	_ = p.Close()
	if _, err := p.Write([]byte("x")); err != io.ErrClosedPipe {
		t.Fatalf("Write after Close = %v, want io.ErrClosedPipe", err)
	}
	// second close is a no-op and keeps the first outcome
	_ = p.CloseWithError(errors.New("late"))
	if _, err := p.Read(make([]byte, 1)); err != io.EOF {
		t.Fatalf("Read = %v, want io.EOF", err)
	}
}
