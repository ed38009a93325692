// Package logging holds the process-wide console log sink.
//
// Call Setup once from main; packages then look their logger up with Named
// instead of configuring anything themselves.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Options configures Setup.
type Options struct {
	// Writer defaults to os.Stderr.
	Writer  io.Writer
	Verbose bool
	NoColor bool
}

var level slog.LevelVar

// Setup installs the console handler as the slog default and returns the
// logger.
func Setup(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	SetVerbose(opts.Verbose)

	logger := slog.New(NewHandler(w, &HandlerOptions{
		Level:   &level,
		NoColor: opts.NoColor,
	}))
	slog.SetDefault(logger)
	return logger
}

// SetVerbose turns debug records on or off for every logger built by Setup.
func SetVerbose(verbose bool) {
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// Named returns the default logger tagged with logger=name.
func Named(name string) *slog.Logger {
	return slog.Default().With("logger", name)
}

// Progress logs msg at info level on the current console line.
func Progress(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	args = append(args, slog.Bool(SameLineKey, true))
	logger.Log(ctx, slog.LevelInfo, msg, args...)
}
