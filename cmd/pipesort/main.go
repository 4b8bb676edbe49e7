// Command pipesort sorts the lines of stdin onto stdout by recursively
// splitting the input across isolated workers and streaming-merging their
// sorted halves
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"pipesort/internal/platform/config"
	perr "pipesort/internal/platform/errors"
	"pipesort/internal/platform/logger"
	"pipesort/internal/services/sorter/service"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Named("pipesort")

	// no command-line surface at all: the input is stdin, the output is
	// stdout, everything else is environment
	if len(os.Args) > 1 {
		fmt.Fprintf(os.Stderr, "usage: %s\n", filepath.Base(os.Args[0]))
		os.Exit(perr.ExitUsage)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := service.OptionsFromEnv(config.New())
	srt, err := service.New(opts)
	if err != nil {
		l.Error().Err(err).Msg("invalid options")
		os.Exit(perr.ExitCode(err))
	}

	if err := srt.Run(ctx, os.Stdin, os.Stdout); err != nil {
		l.Error().Err(err).Msg("sort failed")
		os.Exit(perr.ExitCode(err))
	}
}
