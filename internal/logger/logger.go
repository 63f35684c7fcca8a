// Package logger owns the process-wide logrus logger. Diagnostics go to
// stderr so reports on stdout stay machine-readable.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu  sync.Mutex
	log *logrus.Logger
)

// Init configures the logger. level is one of debug, info, warn or error;
// an empty or unknown level falls back to LOG_LEVEL, then warn.
func Init(level string, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	l := logrus.New()
	if w == nil {
		w = os.Stderr
	}
	l.SetOutput(w)
	l.SetLevel(ParseLevel(level))
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	log = l
}

// ParseLevel resolves a level name, consulting LOG_LEVEL when name is empty.
func ParseLevel(name string) logrus.Level {
	if name == "" {
		name = os.Getenv("LOG_LEVEL")
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

// GetLogger returns the configured logger, initializing it on first use.
func GetLogger() *logrus.Logger {
	mu.Lock()
	l := log
	mu.Unlock()
	if l == nil {
		Init("", nil)
		mu.Lock()
		l = log
		mu.Unlock()
	}
	return l
}

// WithField adds a field to the logger.
func WithField(key string, value any) *logrus.Entry {
	return GetLogger().WithField(key, value)
}

// WithFields adds multiple fields to the logger.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return GetLogger().WithFields(fields)
}

// WithError adds an error field to the logger.
func WithError(err error) *logrus.Entry {
	return GetLogger().WithError(err)
}

func Debugf(format string, args ...any) {
	GetLogger().Debugf(format, args...)
}

func Infof(format string, args ...any) {
	GetLogger().Infof(format, args...)
}

func Warnf(format string, args ...any) {
	GetLogger().Warnf(format, args...)
}
