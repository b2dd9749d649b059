// Package logging builds the process-wide diagnostic logger.
//
// Records always go to the given writer (normally stderr) as slog text.
// When a log file is configured they are also appended to a size-rotated
// file.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/roach88/bizdesk/internal/config"
)

// New returns a logger for cfg. verbose forces debug level. The returned
// closer releases the log file and must be called on shutdown.
func New(w io.Writer, cfg config.Log, verbose bool) (*slog.Logger, io.Closer, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		w = io.MultiWriter(w, file)
		closer = file
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
