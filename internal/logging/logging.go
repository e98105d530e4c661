// Package logging routes the standard logger to stdout and, when configured,
// a size-rotated file.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"cinelist/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup points the standard logger at stdout plus the rotating file named in
// cfg. The returned closer flushes the file and restores stdout-only output.
func Setup(cfg config.LogSettings) (io.Closer, error) {
	return setup(cfg, os.Stdout)
}

func setup(cfg config.LogSettings, console io.Writer) (io.Closer, error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if cfg.File == "" {
		log.SetOutput(console)
		return nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, err
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	log.SetOutput(io.MultiWriter(console, lj))
	return closerFunc(func() error {
		log.SetOutput(console)
		return lj.Close()
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
