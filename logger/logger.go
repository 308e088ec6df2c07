package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFile = "reade.log"

const (
	maxLogSizeMB  = 5
	maxLogBackups = 5
	maxLogAgeDays = 14
)

var Logger *slog.Logger

func init() {
	// Safe default until InitLogger or InitFileLogger runs.
	Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// InitLogger initializes the global logger writing to stderr.
// Used by tests and as a bootstrap before the config file is loaded.
func InitLogger(debug bool, logLevel string) {
	level := parseLogLevel(logLevel)
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	// Text handler for debug mode (more readable), JSON otherwise.
	var handler slog.Handler
	if debug {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	Logger = slog.New(handler)
}

// InitFileLogger configures the global logger to write structured logs to a
// rotating file so log output never mixes with the rendered UI.
func InitFileLogger(debug bool, logLevel, logFormat, logPath string) error {
	level := parseLogLevel(logLevel)
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		Logger = slog.New(newHandler(logFormat, io.Discard, opts))
		return err
	}

	writer := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}

	Logger = slog.New(newHandler(logFormat, writer, opts))
	return nil
}

func defaultLogPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return filepath.Join(".reade", "logs", defaultLogFile)
	}
	return filepath.Join(homeDir, ".reade", "logs", defaultLogFile)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return slog.NewTextHandler(out, opts)
	default:
		return slog.NewJSONHandler(out, opts)
	}
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// DebugEnabled returns true if debug logging is enabled
func DebugEnabled() bool {
	return Logger.Enabled(context.TODO(), slog.LevelDebug)
}
