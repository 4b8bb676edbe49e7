// Package lines streams newline-delimited records between the sorter's
// units. One record is one line, held without its terminator; the wire
// form is terminator-framed
package lines

import (
	"bufio"
	"io"
)

const (
	scanBufSize      = 512 * 1024
	maxScanTokenSize = 32 * 1024 * 1024
)

// Reader streams records from a byte stream until EOF
type Reader struct {
	sc    *bufio.Scanner
	err   error
	count int
	bytes int64
}

// NewReader creates a Reader over r with a grown scan buffer so long
// records survive
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	buf := make([]byte, scanBufSize)
	sc.Buffer(buf, maxScanTokenSize)
	return &Reader{sc: sc}
}

// Next reads the next record; returns io.EOF when the stream is done.
// The returned slice is a private copy and stays valid across calls
func (rd *Reader) Next() ([]byte, error) {
	if rd.err != nil {
		return nil, rd.err
	}
	if !rd.sc.Scan() {
		if err := rd.sc.Err(); err != nil {
			rd.err = err
			return nil, err
		}
		rd.err = io.EOF
		return nil, io.EOF
	}
	line := rd.sc.Bytes()
	cp := make([]byte, len(line))
	copy(cp, line)
	rd.count++
	rd.bytes += int64(len(cp) + 1) // include terminator
	return cp, nil
}

// Stats returns the number of records and total framed bytes read so far
func (rd *Reader) Stats() (records int, bytes int64) {
	return rd.count, rd.bytes
}

// Writer frames records onto a byte stream, one terminator per record
type Writer struct {
	w     io.Writer
	count int
}

// NewWriter creates a Writer over w
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// WriteLine writes one record followed by the terminator
func (wr *Writer) WriteLine(line []byte) error {
	if _, err := wr.w.Write(line); err != nil {
		return err
	}
	if _, err := wr.w.Write([]byte{'\n'}); err != nil {
		return err
	}
	wr.count++
	return nil
}

// Count returns the number of records written so far; the dispatcher
// derives each side's stream count from it
func (wr *Writer) Count() int { return wr.count }
