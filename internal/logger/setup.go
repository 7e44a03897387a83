package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/caroline-insar/caroline-download/pkg/fsutil"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ConsoleOptions configures logging to stdout.
type ConsoleOptions struct {
	Enable bool
	Level  string
	Format OutputFormat
}

// FileOptions configures the rotating log file. Path empty means no file.
type FileOptions struct {
	Path       string
	Level      string
	Format     OutputFormat
	MaxSizeMB  int
	MaxBackups int
}

// Options configures Setup.
type Options struct {
	Console ConsoleOptions
	File    FileOptions
	// RunID is attached to every record. A random one is generated when empty.
	RunID string
}

// Setup installs the global logger for one run and returns the run id and a
// closer for the log file.
func Setup(opts Options) (string, io.Closer, error) {
	var handlers []slog.Handler
	var closer io.Closer = nopCloser{}

	if opts.Console.Enable {
		handlers = append(handlers, newHandler(getOutput(), ParseLevel(opts.Console.Level), opts.Console.Format))
	}

	if opts.File.Path != "" {
		if err := fsutil.EnsureFileDir(opts.File.Path); err != nil {
			return "", nil, err
		}
		file := &lumberjack.Logger{
			Filename:   opts.File.Path,
			MaxSize:    opts.File.MaxSizeMB,
			MaxBackups: opts.File.MaxBackups,
			LocalTime:  true,
		}
		// lumberjack opens lazily; fail now rather than on the first record.
		if _, err := file.Write(nil); err != nil {
			return "", nil, err
		}
		handlers = append(handlers, newHandler(file, ParseLevel(opts.File.Level), opts.File.Format))
		closer = file
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.DiscardHandler
	case 1:
		handler = handlers[0]
	default:
		handler = &fanoutHandler{handlers: handlers}
	}

	logger = slog.New(handler).With("run_id", runID)
	return runID, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanoutHandler sends each record to every handler that accepts its level.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, r.Level) {
			errs = append(errs, hh.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: next}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithGroup(name)
	}
	return &fanoutHandler{handlers: next}
}
