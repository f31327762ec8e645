// Package logutils builds the zap loggers used across allowance.
package logutils

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures log file rotation. A zero Filename disables the
// file sink.
type FileOptions struct {
	Filename   string
	MaxSize    int // megabytes
	MaxBackups int
	Compress   bool
}

// ParseLevel accepts the zap level names, case insensitively. An empty
// string means "warn" so diagnostics stay out of the prompt by default.
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.TrimSpace(strings.ToLower(level))
	if level == "" {
		return zapcore.WarnLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// New returns a logger writing to stderr. development switches to the
// human readable console encoder with caller information.
func New(level string, development bool) (*zap.Logger, error) {
	return NewWithFile(level, development, FileOptions{})
}

// NewWithFile is New plus an optional rotating JSON file sink.
func NewWithFile(level string, development bool, file FileOptions) (*zap.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	atom := zap.NewAtomicLevelAt(l)

	var encCfg zapcore.EncoderConfig
	var enc zapcore.Encoder
	if development {
		encCfg = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(os.Stderr), atom),
	}
	if file.Filename != "" {
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileCfg),
			SyncerWithRotation(file),
			atom,
		))
	}

	opts := []zap.Option{zap.ErrorOutput(zapcore.Lock(os.Stderr))}
	if development {
		opts = append(opts, zap.AddCaller(), zap.Development())
	}
	return zap.New(zapcore.NewTee(cores...), opts...), nil
}

// SyncerWithRotation wraps a lumberjack logger as a zap WriteSyncer.
func SyncerWithRotation(opts FileOptions) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		Compress:   opts.Compress,
	})
}
