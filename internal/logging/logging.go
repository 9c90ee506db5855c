// Package logging builds the diagnostic logger used during a run.
//
// Progress lines and the summary are user output and go through the output
// package. This logger carries diagnostics: client command lines, retries,
// timing, and warnings.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits.
const (
	maxSizeMB  = 10
	maxBackups = 5
	maxAgeDays = 30
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means warn.
	Level string
	// File is an optional JSON log file, rotated by size.
	File string
	// Console receives human-readable logs. Nil means os.Stderr.
	Console io.Writer
	// RunID is attached to every entry when set.
	RunID string
}

// New builds a logger writing to the console and, if configured, a file.
// The returned close function flushes and releases the file.
func New(opts Options) (*zap.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.TimeKey = ""
	consoleCfg.CallerKey = ""
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(console), zap.NewAtomicLevelAt(level)),
	}

	closeFn := func() error { return nil }
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		// The file always records debug entries.
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(rotator), zap.NewAtomicLevelAt(zapcore.DebugLevel)))
		closeFn = rotator.Close
	}

	logger := zap.New(zapcore.NewTee(cores...))
	if opts.RunID != "" {
		logger = logger.With(zap.String("run_id", opts.RunID))
	}

	return logger, func() error {
		_ = logger.Sync()
		return closeFn()
	}, nil
}

// ParseLevel converts a level name. Empty means warn.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.WarnLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}
