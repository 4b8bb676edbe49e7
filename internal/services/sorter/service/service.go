// Package service implements the sorter: ingest the input, split it across
// two isolated workers running the same algorithm, and merge their sorted
// halves back into one stream
package service

import (
	"context"
	"errors"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"pipesort/internal/adapters/lines"
	"pipesort/internal/core/textcmp"
	"pipesort/internal/platform/config"
	perr "pipesort/internal/platform/errors"
	"pipesort/internal/platform/logger"
	"pipesort/internal/services/sorter/domain"
)

// OptionsFromEnv reads sorter options from the PIPESORT_ env prefix
func OptionsFromEnv(cfg config.Conf) domain.Options {
	c := cfg.Prefix("PIPESORT_")
	return domain.Options{
		Spawn:   c.MayEnum("SPAWN", domain.SpawnGoroutine, domain.SpawnGoroutine, domain.SpawnProcess),
		Step:    c.MayInt("STEP", domain.DefaultStep),
		Collate: c.MayString("COLLATE", ""),
	}
}

// Sorter runs the full algorithm: ingest, dispatch, merge.
// One Sorter is shared by every in-process worker of a tree; all per-run
// state lives on the stack of Run
type Sorter struct {
	opts  domain.Options
	cmp   textcmp.Comparer
	spawn domain.Spawner
}

// New validates opts and constructs a Sorter wired for the selected spawn
// mode
func New(opts domain.Options) (*Sorter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cmp, err := textcmp.ForLocale(opts.Collate)
	if err != nil {
		return nil, err
	}

	s := &Sorter{opts: opts, cmp: cmp}
	switch opts.Spawn {
	case domain.SpawnProcess:
		exe, err := os.Executable()
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeResource, "resolve own executable for process workers")
		}
		s.spawn = &ProcessSpawner{Path: exe}
	default:
		s.spawn = &goroutineSpawner{s: s}
	}
	return s, nil
}

// WithSpawner overrides the worker spawner; mainly a seam for tests
func (s *Sorter) WithSpawner(sp domain.Spawner) *Sorter {
	if sp == nil {
		panic("sorter.WithSpawner requires a non nil Spawner")
	}
	s.spawn = sp
	return s
}

// Run sorts everything read from in onto out. A worker calls this with its
// two assigned streams; the top-level call passes stdin and stdout
func (s *Sorter) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	batch, err := s.ingest(in)
	if err != nil {
		return err
	}

	switch batch.Len() {
	case 0:
		// empty input is a base case: empty output, success
		return nil
	case 1:
		w := lines.NewWriter(out)
		return perr.WrapIf(w.WriteLine(batch.Line(0)), perr.ErrorCodeOutput, "emit single record")
	}
	return s.dispatch(ctx, batch, out)
}

// ingest reads records until EOF into a batch growing by the fixed step
func (s *Sorter) ingest(in io.Reader) (*domain.Batch, error) {
	rd := lines.NewReader(in)
	batch := domain.NewBatch(s.opts.Step)
	for {
		line, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeInput, "read input stream")
		}
		batch.Append(line)
	}
	return batch, nil
}

// dispatch owns the worker lifecycle: spawn two workers, feed each its
// half, wait for both terminal states, then merge the sorted halves
func (s *Sorter) dispatch(ctx context.Context, batch *domain.Batch, out io.Writer) error {
	log := logger.C(ctx)
	lower, upper := batch.Split()

	left, err := s.spawn.Spawn(ctx)
	if err != nil {
		return err
	}
	countLeft, err := feed(left, lower)
	if err != nil {
		return err
	}

	right, err := s.spawn.Spawn(ctx)
	if err != nil {
		return err
	}
	countRight, err := feed(right, upper)
	if err != nil {
		return err
	}

	log.Debug().
		Str("left", left.ID).Int("count_left", countLeft).
		Str("right", right.ID).Int("count_right", countRight).
		Msg("halves dispatched")

	// joint wait: either failure is fatal for the whole tree and the
	// merge must not run
	g := new(errgroup.Group)
	g.Go(func() error {
		return perr.WrapIf(left.Wait(), perr.ErrorCodeCoordination, "left worker failed")
	})
	g.Go(func() error {
		return perr.WrapIf(right.Wait(), perr.ErrorCodeCoordination, "right worker failed")
	})
	if err := g.Wait(); err != nil {
		return err
	}

	m := &Merger{Cmp: s.cmp}
	return m.Merge(out, left.Output, right.Output, countLeft, countRight)
}

// feed writes one half into a worker's input in original relative order,
// closes it, and returns the stream count derived on the writer side
func feed(h *domain.Handle, half [][]byte) (int, error) {
	w := lines.NewWriter(h.Input)
	for _, line := range half {
		if err := w.WriteLine(line); err != nil {
			return w.Count(), perr.Wrapf(err, perr.ErrorCodeCoordination, "feed worker %s", h.ID)
		}
	}
	if err := h.Input.Close(); err != nil {
		return w.Count(), perr.Wrapf(err, perr.ErrorCodeResource, "close input of worker %s", h.ID)
	}
	return w.Count(), nil
}
