package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", errors.WithHint(
			errors.Newf("unknown log format %q", s),
			"use text or json",
		)
	}
}

// Config holds the configuration for creating a new logger.
type Config struct {
	// Level sets the minimum log level.
	Level slog.Level
	// Format specifies the output format (text or JSON).
	Format Format
	// Output is where log messages are written. Defaults to os.Stderr.
	Output io.Writer
	// NoColor disables colors even on a terminal.
	NoColor bool
	// Tee receives a JSON copy of every record at Debug level when set.
	Tee io.Writer
}

// New creates a logger with the given configuration.
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = NewHandler(output, opts, !cfg.NoColor && SupportsColor(output))
	}

	if cfg.Tee != nil {
		handler = tee{handler, slog.NewJSONHandler(cfg.Tee, &slog.HandlerOptions{Level: slog.LevelDebug})}
	}

	return slog.New(handler)
}

// LevelFor maps the -v count and --quiet flag to a level: quiet shows
// errors only, -v shows debug output.
func LevelFor(verbosity int, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbosity > 0:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NewDiscard creates a logger that discards all output.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))

	return len(p), nil
}

// ForTest creates a Debug level logger that writes to the test log.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()

	return New(Config{
		Level:   slog.LevelDebug,
		Format:  FormatText,
		Output:  &testWriter{t: t},
		NoColor: true,
	})
}
