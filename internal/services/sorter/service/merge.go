package service

import (
	"io"

	"pipesort/internal/adapters/lines"
	"pipesort/internal/core/textcmp"
	perr "pipesort/internal/platform/errors"
)

// pending marks which side, if any, holds a fetched-but-unconsumed record
// awaiting the next comparison. It is algorithm state, not a concurrency
// primitive
type pending uint8

const (
	// pendingNone: no side holds a record; fetch fresh from both
	pendingNone pending = iota

	// pendingLeft: the left record lost the last comparison and is held
	// for re-comparison against a fresh right record
	pendingLeft

	// pendingRight: symmetric to pendingLeft
	pendingRight
)

// String renders the marker for diagnostics
func (p pending) String() string {
	switch p {
	case pendingNone:
		return "none"
	case pendingLeft:
		return "left"
	case pendingRight:
		return "right"
	default:
		return "invalid"
	}
}

// Merger combines two sorted record streams of known lengths into one
// sorted stream, holding at most one record of lookahead per side. The
// counts are the only end-of-stream knowledge it has: the streams carry
// no sentinel
type Merger struct {
	Cmp textcmp.Comparer
}

// mergeState is the transient cursor of one merge; discarded on completion
type mergeState struct {
	cmp                    textcmp.Comparer
	out                    *lines.Writer
	left, right            *lines.Reader
	countLeft, countRight  int
	processedL, processedR int
	lock                   pending
	lineL, lineR           []byte
}

// Merge writes the sorted union of left (countLeft records) and right
// (countRight records) to out. Both inputs must already be sorted under
// Cmp
func (m *Merger) Merge(out io.Writer, left, right io.Reader, countLeft, countRight int) error {
	cmp := m.Cmp
	if cmp == nil {
		cmp = textcmp.Bytes{}
	}
	st := &mergeState{
		cmp:        cmp,
		out:        lines.NewWriter(out),
		left:       lines.NewReader(left),
		right:      lines.NewReader(right),
		countLeft:  countLeft,
		countRight: countRight,
		lock:       pendingNone,
	}

	// both sides holding exactly one record skips the general loop and
	// its lock bookkeeping: one comparison settles everything
	if countLeft == 1 && countRight == 1 {
		return st.mergeSingletons()
	}

	for st.processedL < st.countLeft && st.processedR < st.countRight {
		if err := st.fetch(); err != nil {
			return err
		}
		if err := st.compareEmit(); err != nil {
			return err
		}
	}

	// the loop leaves exactly one unconsumed record behind; a clear lock
	// here means the bookkeeping is broken
	switch st.lock {
	case pendingLeft:
		if err := st.emit(st.lineL); err != nil {
			return err
		}
		st.processedL++
	case pendingRight:
		if err := st.emit(st.lineR); err != nil {
			return err
		}
		st.processedR++
	default:
		return perr.Protocolf("merge loop exited with pending=%s", st.lock)
	}

	return st.drain()
}

// mergeSingletons handles the one-record-per-side case
func (st *mergeState) mergeSingletons() error {
	var err error
	if st.lineL, err = st.next(st.left, "left"); err != nil {
		return err
	}
	if st.lineR, err = st.next(st.right, "right"); err != nil {
		return err
	}
	first, second := st.lineL, st.lineR
	if st.cmp.Compare(st.lineL, st.lineR) >= 0 {
		first, second = st.lineR, st.lineL
	}
	if err := st.emit(first); err != nil {
		return err
	}
	return st.emit(second)
}

// fetch refreshes the candidates according to the pending marker: a held
// record stays, the other side supplies a fresh one
func (st *mergeState) fetch() error {
	var err error
	switch st.lock {
	case pendingNone:
		if st.lineL, err = st.next(st.left, "left"); err != nil {
			return err
		}
		st.lineR, err = st.next(st.right, "right")
		return err
	case pendingLeft:
		st.lineR, err = st.next(st.right, "right")
		return err
	case pendingRight:
		st.lineL, err = st.next(st.left, "left")
		return err
	default:
		return perr.Protocolf("merge fetch with pending=%d outside its three states", uint8(st.lock))
	}
}

// compareEmit emits the smaller candidate and re-points the pending marker
// at the larger one, which has not yet lost to a record from its own side
func (st *mergeState) compareEmit() error {
	if st.cmp.Compare(st.lineL, st.lineR) < 0 {
		if err := st.emit(st.lineL); err != nil {
			return err
		}
		st.processedL++
		st.lock = pendingRight
		return nil
	}
	if err := st.emit(st.lineR); err != nil {
		return err
	}
	st.processedR++
	st.lock = pendingLeft
	return nil
}

// drain copies the one side still below its count; the other is already
// fully consumed
func (st *mergeState) drain() error {
	for st.processedL < st.countLeft {
		line, err := st.next(st.left, "left")
		if err != nil {
			return err
		}
		if err := st.emit(line); err != nil {
			return err
		}
		st.processedL++
	}
	for st.processedR < st.countRight {
		line, err := st.next(st.right, "right")
		if err != nil {
			return err
		}
		if err := st.emit(line); err != nil {
			return err
		}
		st.processedR++
	}
	return nil
}

// next reads one record from a side; the counts promise it exists, so any
// failure here, including a premature end, is fatal
func (st *mergeState) next(rd *lines.Reader, side string) ([]byte, error) {
	line, err := rd.Next()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeProtocol, "%s stream ended before its promised count", side)
	}
	return line, nil
}

// emit writes one record to the merged output
func (st *mergeState) emit(line []byte) error {
	return perr.WrapIf(st.out.WriteLine(line), perr.ErrorCodeOutput, "write merged record")
}
