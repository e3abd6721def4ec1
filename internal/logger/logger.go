package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	logger    *slog.Logger
	logLevel  slog.Level
	logFormat string
	once      sync.Once
)

// Config controls how the process-wide logger is built.
type Config struct {
	Level  string
	Format string
	Output io.Writer
}

// ConfigFromEnv reads LOG_LEVEL, PEPYS_DEBUG and LOG_FORMAT.
func ConfigFromEnv() Config {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		debug := os.Getenv("PEPYS_DEBUG")
		if debug == "1" || debug == "true" {
			levelStr = "DEBUG"
		} else {
			levelStr = "WARN"
		}
	}

	return Config{
		Level:  levelStr,
		Format: os.Getenv("LOG_FORMAT"),
		Output: os.Stderr,
	}
}

// Initialize builds the logger from the environment. Only the first call has an effect.
func Initialize() {
	once.Do(func() {
		build(ConfigFromEnv())
	})
}

// InitializeWithConfig replaces the logger unconditionally.
func InitializeWithConfig(cfg Config) {
	once.Do(func() {})
	build(cfg)
}

func build(cfg Config) {
	logLevel = parseLevel(cfg.Level)

	logFormat = strings.ToLower(cfg.Format)
	if logFormat == "" {
		logFormat = "text"
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	if logFormat == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger = slog.New(handler)
}

func parseLevel(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func GetLogger() *slog.Logger {
	if logger == nil {
		Initialize()
	}
	return logger
}

func GetLevel() slog.Level {
	if logger == nil {
		Initialize()
	}
	return logLevel
}

func GetFormat() string {
	if logger == nil {
		Initialize()
	}
	return logFormat
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}
