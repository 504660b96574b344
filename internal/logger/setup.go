package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// LogFileName is the log file written outside debug mode.
const LogFileName = "server.log"

// Options configures Init.
type Options struct {
	// Dir is the log directory. It is created if missing.
	Dir string

	// Level is the file log level name. Ignored in debug mode.
	Level string

	// Debug logs everything to a timestamped file and adds elapsed time.
	Debug bool

	// RetainDays prunes log files older than this many days. Zero keeps all.
	RetainDays int

	// Console receives warnings and errors. Defaults to os.Stderr.
	Console io.Writer

	// Now is the clock used for file names and pruning. Defaults to time.Now.
	Now func() time.Time
}

// Init directs logging to a file in opts.Dir plus the console.
// It returns the path of the log file.
func Init(opts Options) (string, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Console == nil {
		opts.Console = os.Stderr
	}

	if err := os.MkdirAll(opts.Dir, 0o700); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}
	if opts.RetainDays > 0 {
		pruneLogs(opts.Dir, opts.Now().AddDate(0, 0, -opts.RetainDays))
	}

	name := LogFileName
	if opts.Debug {
		name = opts.Now().Format("20060102_150405") + "_" + LogFileName
		level.SetLevel(zapcore.DebugLevel)
	} else if err := SetLevel(opts.Level); err != nil {
		return "", err
	}

	path := filepath.Join(opts.Dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}

	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if opts.Debug {
		fileCfg.EncodeTime = elapsedTimeEncoder(opts.Now())
	}
	fileCore := zapcore.NewCore(zapcore.NewConsoleEncoder(fileCfg), zapcore.AddSync(f), level)

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.TimeKey = ""
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if isTerminal(opts.Console) {
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleCfg),
		zapcore.AddSync(opts.Console),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapcore.WarnLevel && level.Enabled(l)
		}),
	)

	replace(zap.New(zapcore.NewTee(fileCore, consoleCore)), []io.Closer{f})
	return path, nil
}

// elapsedTimeEncoder writes the wall clock time followed by HH:MM:SS since start.
func elapsedTimeEncoder(start time.Time) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02T15:04:05.000"))
		enc.AppendString(formatElapsed(t.Sub(start)))
	}
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// pruneLogs removes log files last modified before cutoff.
func pruneLogs(dir string, cutoff time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, e.Name()))
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
