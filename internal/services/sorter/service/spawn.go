package service

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/google/uuid"

	perr "pipesort/internal/platform/errors"
	"pipesort/internal/platform/iox"
	"pipesort/internal/platform/logger"
	"pipesort/internal/services/sorter/domain"
)

// goroutineSpawner runs each worker as a goroutine on fresh state. The
// input channel is a synchronous pipe (backpressure while the parent
// feeds is expected); the output channel buffers without bound so the
// worker can flush its whole sorted half and terminate before the parent
// starts merging
type goroutineSpawner struct {
	s *Sorter
}

// Spawn starts one goroutine worker and returns its handle
func (g *goroutineSpawner) Spawn(ctx context.Context) (*domain.Handle, error) {
	id := uuid.NewString()
	inR, inW := io.Pipe()
	out := iox.NewPipe()
	done := make(chan error, 1)

	wctx := logger.WithWorker(ctx, id, logger.Depth(ctx)+1)
	go func() {
		err := g.s.Run(wctx, inR, out)
		if err != nil {
			// a parent blocked feeding or draining must observe the
			// failure, not hang
			inR.CloseWithError(err)
			out.CloseWithError(err)
		} else {
			_ = inR.Close()
			_ = out.Close()
		}
		done <- err
	}()

	wait := func() error {
		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return perr.Wrap(ctx.Err(), perr.ErrorCodeCoordination, "wait for goroutine worker interrupted")
		}
	}
	return domain.NewHandle(id, inW, out, wait), nil
}

// ProcessSpawner re-invokes the current executable with no arguments for
// literal process isolation. The child discovers its half purely by
// reading its stdin to EOF, exactly like a top-level invocation, and
// inherits stderr so failures surface on the tree's error stream.
//
// A sorted half larger than the kernel pipe capacity blocks the child
// past the parent's wait in this mode; the goroutine spawner has no such
// bound.
type ProcessSpawner struct {
	// Path is the executable to spawn; normally the running binary
	Path string
}

// Spawn forks one child process wired to two fresh OS pipes
func (p *ProcessSpawner) Spawn(ctx context.Context) (*domain.Handle, error) {
	id := uuid.NewString()

	inR, inW, err := os.Pipe()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeResource, "create worker input pipe")
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		_ = inR.Close()
		_ = inW.Close()
		return nil, perr.Wrap(err, perr.ErrorCodeResource, "create worker output pipe")
	}

	cmd := exec.CommandContext(ctx, p.Path)
	cmd.Stdin = inR
	cmd.Stdout = outW
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		_ = inR.Close()
		_ = inW.Close()
		_ = outR.Close()
		_ = outW.Close()
		return nil, perr.Wrap(err, perr.ErrorCodeResource, "spawn worker process")
	}

	// the child owns its pipe ends now; keeping ours open would mask EOF
	_ = inR.Close()
	_ = outW.Close()

	logger.C(ctx).Debug().Str("worker_id", id).Int("pid", cmd.Process.Pid).Msg("worker process spawned")

	wait := func() error {
		if err := cmd.Wait(); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeCoordination, "worker process %s exited unsuccessfully", id)
		}
		return nil
	}
	return domain.NewHandle(id, inW, outR, wait), nil
}
