package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/54yyyu/yo-cmd/internal/config"
)

// Logger wraps logrus.Logger with a component field.
type Logger struct {
	*logrus.Logger
	component string
}

var globalLogger *Logger

// Config holds logging configuration.
type Config struct {
	Level   string // debug, info, warn, error
	Format  string // json, text
	LogFile string // empty disables file output
	Console bool   // also log to stderr
}

// DefaultConfig returns the standard logging configuration: info-level
// text logs under the config directory.
func DefaultConfig() Config {
	path, err := config.GetLogPath()
	if err != nil {
		path = ""
	}
	return Config{
		Level:   config.LogLevelInfo,
		Format:  config.LogFormatText,
		LogFile: path,
	}
}

// Init initializes the global logger.
func Init(cfg Config) error {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case config.LogFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	case config.LogFormatText:
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		})
	default:
		return fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	var writers []io.Writer
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err == nil {
			if f, ferr := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); ferr == nil {
				writers = append(writers, f)
			}
		}
	}
	if cfg.Console {
		writers = append(writers, os.Stderr)
	}
	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	globalLogger = &Logger{Logger: logger, component: config.AppName}
	return nil
}

// GetLogger returns the global logger, initializing it with defaults if
// needed.
func GetLogger() *Logger {
	if globalLogger == nil {
		_ = Init(DefaultConfig())
	}
	return globalLogger
}

// WithComponent returns a log entry tagged with a component name.
func WithComponent(name string) *logrus.Entry {
	return GetLogger().WithField("component", name)
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) {
	GetLogger().Debugf(format, args...)
}

// Infof logs a formatted info message.
func Infof(format string, args ...any) {
	GetLogger().Infof(format, args...)
}

// Warnf logs a formatted warning message.
func Warnf(format string, args ...any) {
	GetLogger().Warnf(format, args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) {
	GetLogger().Errorf(format, args...)
}
