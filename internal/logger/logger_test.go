package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func reset(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
}

func TestSetVerbose(t *testing.T) {
	reset(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	reset(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	assert.Equal(t, "DEBUG test message arg\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	reset(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")
	Section("Search")
	Info("info message")

	assert.Empty(t, buf.String())
}

func TestSection(t *testing.T) {
	reset(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Search Execution")

	assert.Equal(t, "DEBUG === Search Execution ===\n", buf.String())
}

func TestWarnAndError_AlwaysLogged(t *testing.T) {
	reset(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("warning %d", 1)
	Error("error %d", 2)

	assert.Equal(t, "WARN warning 1\nERROR error 2\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected zapcore.Level
		wantErr  bool
	}{
		{name: "debug", expected: zapcore.DebugLevel},
		{name: "info", expected: zapcore.InfoLevel},
		{name: "warn", expected: zapcore.WarnLevel},
		{name: "warning", expected: zapcore.WarnLevel},
		{name: "ERROR", expected: zapcore.ErrorLevel},
		{name: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l)
		})
	}
}

func TestSetLevel(t *testing.T) {
	reset(t)

	require.NoError(t, SetLevel("debug"))
	assert.True(t, IsVerbose())

	require.NoError(t, SetLevel("error"))
	assert.False(t, IsVerbose())
	assert.False(t, level.Enabled(zapcore.WarnLevel))

	assert.Error(t, SetLevel("loud"))
	assert.Equal(t, zapcore.ErrorLevel, level.Level())
}

func TestInit_WritesFileAndConsole(t *testing.T) {
	reset(t)

	dir := t.TempDir()
	var console bytes.Buffer

	path, err := Init(Options{Dir: dir, Level: "info", Console: &console})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, LogFileName), path)

	Info("hello %d", 1)
	Debug("hidden")
	Warn("careful")
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello 1")
	assert.Contains(t, string(data), "careful")
	assert.NotContains(t, string(data), "hidden")

	assert.NotContains(t, console.String(), "hello 1")
	assert.Contains(t, console.String(), "careful")
}

func TestInit_DebugModeUsesTimestampedFile(t *testing.T) {
	reset(t)

	dir := t.TempDir()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	path, err := Init(Options{
		Dir:     dir,
		Level:   "error",
		Debug:   true,
		Console: &bytes.Buffer{},
		Now:     func() time.Time { return now },
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20260102_030405_server.log"), path)
	assert.True(t, IsVerbose())

	Debug("debug detail")
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug detail")
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	reset(t)

	_, err := Init(Options{Dir: t.TempDir(), Level: "loud", Console: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestInit_PrunesOldLogs(t *testing.T) {
	reset(t)

	dir := t.TempDir()
	old := filepath.Join(dir, "20200101_000000_server.log")
	fresh := filepath.Join(dir, "recent.log")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, fresh, other} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	}
	stale := time.Now().AddDate(0, 0, -30)
	require.NoError(t, os.Chtimes(old, stale, stale))
	require.NoError(t, os.Chtimes(other, stale, stale))

	_, err := Init(Options{Dir: dir, Level: "info", RetainDays: 7, Console: &bytes.Buffer{}})
	require.NoError(t, err)
	require.NoError(t, Sync())

	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.FileExists(t, other)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", formatElapsed(-time.Second))
	assert.Equal(t, "00:00:59", formatElapsed(59*time.Second))
	assert.Equal(t, "01:01:01", formatElapsed(time.Hour+time.Minute+time.Second))
}
