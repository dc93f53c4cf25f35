// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the log file
const (
	maxLogFileSizeMB = 5
	maxLogBackups    = 5
)

// Log is the global logger instance
var Log = logrus.New()

// Init initializes the global logger based on application configuration.
// Output goes to stdout and, when cfg.LogFile is set, to a rotating file.
// The returned closer releases the file and is safe to call when no file is used.
func Init(cfg *config.AppConfig) io.Closer {
	closer := Configure(Log, cfg, os.Stdout)

	Log.Info("Logger initialized successfully.")
	Log.Debugf("Log level set to: %s", Log.GetLevel().String())
	Log.Debugf("Log format set for environment: %s", cfg.Environment)
	return closer
}

// Configure applies level, formatter and outputs to l.
func Configure(l *logrus.Logger, cfg *config.AppConfig, console io.Writer) io.Closer {
	var closer io.Closer = nopCloser{}
	out := console
	if cfg.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    maxLogFileSizeMB,
			MaxBackups: maxLogBackups,
		}
		out = io.MultiWriter(console, file)
		closer = file
	}
	l.SetOutput(out)

	// Set Log Level
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		l.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetLevel(level)
	}

	// Set Log Formatter
	if strings.ToLower(cfg.Environment) == "production" || strings.ToLower(cfg.Environment) == "staging" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else { // Development or other environments
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   cfg.LogFile != "", // escape codes would end up in the file
		})
	}
	return closer
}

// Get returns the configured global logger.
func Get() *logrus.Logger {
	return Log
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
