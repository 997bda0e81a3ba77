package logger

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleConfigLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     slog.Level
		wantDebug bool
	}{
		{"info", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			lg, err := NewCustomStdLogger(ConsoleConfig(&buf, tc.level))
			if err != nil {
				t.Fatalf("NewCustomStdLogger() error: %v", err)
			}
			lg.Debug("debug line", "count", 4)
			lg.Info("info line", "result", "E")
			if err := lg.Close(); err != nil {
				t.Fatalf("Close() error: %v", err)
			}

			out := buf.String()
			if !strings.Contains(out, "info line") || !strings.Contains(out, "result=E") {
				t.Errorf("info record missing: %q", out)
			}
			if got := strings.Contains(out, "debug line"); got != tc.wantDebug {
				t.Errorf("debug record present = %v, want %v: %q", got, tc.wantDebug, out)
			}
		})
	}
}

func TestFromExistingAddsFields(t *testing.T) {
	var buf bytes.Buffer
	base, err := New(ConsoleConfig(&buf, slog.LevelInfo))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	lg := FromExisting(base, "component", "http")
	lg.Warn("slow request")

	if out := buf.String(); !strings.Contains(out, "component=http") || !strings.Contains(out, "slow request") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestKeepOpen(t *testing.T) {
	for _, std := range []*os.File{os.Stdout, os.Stderr} {
		if _, ok := keepOpen(std).(io.Closer); ok {
			t.Errorf("keepOpen(%s) still exposes Close", std.Name())
		}
	}

	file, err := os.Create(filepath.Join(t.TempDir(), "flames.log"))
	if err != nil {
		t.Fatalf("create log file: %v", err)
	}
	defer file.Close()
	if keepOpen(file) != io.Writer(file) {
		t.Error("log files should be passed through unchanged")
	}
}
