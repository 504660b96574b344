// Package logger provides process-wide logging for mcp-fess.
//
// Messages go to a log file under the configured directory and, at warning
// level and above, to stderr. Stdout is never written to because it carries
// the MCP protocol in stdio mode.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	level   = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	sugar   = newWriterLogger(os.Stderr, level).Sugar()
	closers []io.Closer
)

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	if v {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.WarnLevel)
}

// IsVerbose returns true if debug messages are logged.
func IsVerbose() bool {
	return level.Enabled(zapcore.DebugLevel)
}

// SetLevel sets the minimum level by name (debug, info, warn, error).
func SetLevel(name string) error {
	l, err := ParseLevel(name)
	if err != nil {
		return err
	}
	level.SetLevel(l)
	return nil
}

// ParseLevel converts a configured level name to a zap level.
// "warning" is accepted as an alias of "warn".
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "warning" || name == "WARNING" {
		return zapcore.WarnLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level %q: %w", name, err)
	}
	return l, nil
}

// SetOutput replaces all outputs with a single plain-text writer.
// Useful for testing.
func SetOutput(w io.Writer) {
	replace(newWriterLogger(w, level), nil)
}

// Debug logs a debug message.
func Debug(format string, args ...any) {
	current().Debugf(format, args...)
}

// Section logs a section header at debug level.
func Section(name string) {
	current().Debugf("=== %s ===", name)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	current().Infof(format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	current().Warnf(format, args...)
}

// Error logs an error.
func Error(format string, args ...any) {
	current().Errorf(format, args...)
}

// Sync flushes buffered output and closes log files opened by Init.
func Sync() error {
	mu.Lock()
	defer mu.Unlock()
	err := sugar.Sync()
	for _, c := range closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	closers = nil
	return err
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func replace(l *zap.Logger, files []io.Closer) {
	mu.Lock()
	old := closers
	sugar = l.Sugar()
	closers = files
	mu.Unlock()
	for _, c := range old {
		_ = c.Close()
	}
}

func newWriterLogger(w io.Writer, enab zapcore.LevelEnabler) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: " ",
	})
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), enab))
}
