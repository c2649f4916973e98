// Package logging builds the run logger: a size-rotated log file plus an
// optional stderr copy, every line tagged with the run id.
package logging

import (
	"io"
	"log"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/ttt-sim/internal/config"
)

const runIDLength = 8

// Logger is a *log.Logger that owns its rotating file
type Logger struct {
	*log.Logger
	RunID string

	file *lumberjack.Logger
}

// New creates the run logger. Nothing is written to disk when cfg.File is
// empty; with cfg.Verbose every line is also copied to stderr.
func New(cfg config.LoggingConfig, stderr io.Writer) *Logger {
	runID := uuid.NewString()[:runIDLength]

	var writers []io.Writer
	var file *lumberjack.Logger
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		writers = append(writers, file)
	}
	if cfg.Verbose && stderr != nil {
		writers = append(writers, stderr)
	}

	var out io.Writer = io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}

	return &Logger{
		Logger: log.New(out, "["+runID+"] ", log.LstdFlags|log.Lmicroseconds|log.Lmsgprefix),
		RunID:  runID,
		file:   file,
	}
}

// Close flushes and closes the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
