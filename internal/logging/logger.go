package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"twitch/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Console receives the same records as the file, typically stderr.
	Console io.Writer
	File    *FileOptions
	// AddSource forces file:line on every record. Debug level always adds it.
	AddSource bool
}

// FileOptions configures the rotating log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a logger writing to the console writer, the rotating file, or
// both. With neither configured it writes to stderr.
func New(opts Options) (*slog.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	var sinks []io.Writer
	if opts.Console != nil {
		sinks = append(sinks, opts.Console)
	}
	if opts.File != nil && strings.TrimSpace(opts.File.Path) != "" {
		rotating, err := rotatingFile(*opts.File)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, rotating)
	}
	var w io.Writer = os.Stderr
	switch len(sinks) {
	case 0:
	case 1:
		w = sinks[0]
	default:
		w = io.MultiWriter(sinks...)
	}

	addSource := opts.AddSource || level <= slog.LevelDebug

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		return slog.New(newConsoleHandler(w, levelVar, addSource)), nil
	case "json":
		return slog.New(newJSONHandler(w, levelVar, addSource)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig creates a logger writing to console and to the rotating log
// file under the configured log directory. Pass nil to log to the file only.
func NewFromConfig(cfg *config.Config, console io.Writer) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Console: console})
	}
	opts := Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Console: console,
	}
	if path := cfg.LogFile(); path != "" {
		opts.File = &FileOptions{
			Path:       path,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		}
	}
	return New(opts)
}

func parseLevel(value string) (slog.Level, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "":
		return slog.LevelInfo, nil
	case "warning":
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

func rotatingFile(opts FileOptions) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}, nil
}
