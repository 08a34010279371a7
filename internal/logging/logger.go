package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	envLogLevel  = "NATIVEVIEW_LOG_LEVEL"
	envLogFormat = "NATIVEVIEW_LOG_FORMAT"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// FileConfig enables the rotated session log file.
type FileConfig struct {
	Enabled       bool
	Dir           string
	SessionID     string
	MaxSizeMB     int
	MaxBackups    int
	MaxAgeDays    int
	Compress      bool
	WriteToStderr bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a new zerolog logger writing to stderr
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to out in the configured format.
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	output := out
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewWithFile creates a logger that also writes JSON lines to a rotated
// session file. The returned cleanup closes the file.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, func(), error) {
	if !fileCfg.Enabled {
		if !fileCfg.WriteToStderr {
			return zerolog.Nop(), func() {}, nil
		}
		return New(cfg), func() {}, nil
	}

	if err := os.MkdirAll(fileCfg.Dir, 0o755); err != nil {
		return New(cfg), func() {}, fmt.Errorf("create log dir: %w", err)
	}

	sessionID := fileCfg.SessionID
	if sessionID == "" {
		sessionID = GenerateSessionID()
	}
	rotator, err := NewLogRotator(RotatorConfig{
		Dir:        fileCfg.Dir,
		FileName:   SessionFilename(sessionID),
		MaxSizeMB:  fileCfg.MaxSizeMB,
		MaxBackups: fileCfg.MaxBackups,
		MaxAgeDays: fileCfg.MaxAgeDays,
		Compress:   fileCfg.Compress,
	})
	if err != nil {
		return New(cfg), func() {}, err
	}

	var out io.Writer = rotator
	if fileCfg.WriteToStderr {
		var console io.Writer = os.Stderr
		if cfg.Format == "console" {
			console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: cfg.TimeFormat}
		}
		out = zerolog.MultiLevelWriter(rotator, console)
	}

	logger := zerolog.New(out).
		Level(cfg.Level).
		With().
		Timestamp().
		Str("session", ShortSessionID(sessionID)).
		Logger()

	cleanup := func() {
		if err := rotator.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close log file: %v\n", err)
		}
	}
	return logger, cleanup, nil
}

// ParseLevel converts a level name into a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// ApplyEnv overrides cfg from the environment.
// NATIVEVIEW_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// NATIVEVIEW_LOG_FORMAT: json, console (default: console)
func ApplyEnv(cfg Config) Config {
	if level := os.Getenv(envLogLevel); level != "" {
		cfg.Level = ParseLevel(level)
	}
	if format := os.Getenv(envLogFormat); format == "json" || format == "console" {
		cfg.Format = format
	}
	return cfg
}

// NewFromEnv creates a logger based on environment variables
func NewFromEnv() zerolog.Logger {
	return New(ApplyEnv(DefaultConfig()))
}
