package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures rotating file output.
type FileConfig struct {
	// Path of the active log file. Empty disables file output.
	Path string
	// MaxSizeMB rotates the file once it reaches this size (default 100).
	MaxSizeMB int
	// MaxBackups is how many rotated files to keep (0 keeps all).
	MaxBackups int
	// MaxAgeDays removes rotated files older than this (0 keeps all).
	MaxAgeDays int
	// Compress gzips rotated files.
	Compress bool
}

// OpenFile returns a rotating writer for cfg.Path.
// The parent directory is created if missing.
func OpenFile(cfg FileConfig) (io.WriteCloser, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("logger: file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
		return nil, fmt.Errorf("logger: create log dir: %w", err)
	}

	size := cfg.MaxSizeMB
	if size <= 0 {
		size = 100
	}

	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    size,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}, nil
}
