// Package logging provides tests for run logs, logger options and tail output.
package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// TestNewRunLogger tests creating a new run logger.
func TestNewRunLogger(t *testing.T) {
	t.Run("successful creation with valid paths", func(t *testing.T) {
		logger, err := NewRunLogger(t.TempDir(), t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()

		if logger.Dir == "" {
			t.Error("expected Dir to be set")
		}
		if logger.RunID == "" {
			t.Error("expected RunID to be set")
		}
		if !strings.HasSuffix(logger.LogPath, LogExt) {
			t.Errorf("expected LogPath ending in %s, got %s", LogExt, logger.LogPath)
		}
		if _, err := os.Stat(logger.LogPath); err != nil {
			t.Errorf("log file not created: %v", err)
		}
	})

	t.Run("empty base dir returns error", func(t *testing.T) {
		_, err := NewRunLogger("", t.TempDir())
		if err == nil {
			t.Fatal("expected error for empty base dir, got nil")
		}
		if !strings.Contains(err.Error(), "empty") {
			t.Errorf("expected empty dir error, got %v", err)
		}
	})

	t.Run("creates log directory if missing", func(t *testing.T) {
		newLogDir := filepath.Join(t.TempDir(), "new-logs", "nested")

		logger, err := NewRunLogger(newLogDir, t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(newLogDir); err != nil {
			t.Errorf("log directory not created: %v", err)
		}
	})

	t.Run("log directory is keyed by project", func(t *testing.T) {
		base := t.TempDir()
		workDir := filepath.Join(t.TempDir(), "my-test-project")
		if err := os.Mkdir(workDir, 0755); err != nil {
			t.Fatal(err)
		}

		logger, err := NewRunLogger(base, workDir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()

		want, err := FindLogDir(base, workDir)
		if err != nil {
			t.Fatal(err)
		}
		if logger.Dir != want {
			t.Errorf("Dir = %s, want %s", logger.Dir, want)
		}
	})
}

// TestRunLoggerLogger tests that the run logger writes leveled entries to its file.
func TestRunLoggerLogger(t *testing.T) {
	run, err := NewRunLogger(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	opts := OptionsFromConfig("debug", "logfmt", false, false)
	logger := run.Logger(opts)
	logger.Debug("task created", "id", "task-001")
	logger.Info("data reset")
	if err := run.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(run.LogPath)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{"task created", "id=task-001", "data reset", "run=" + run.RunID} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q:\n%s", want, content)
		}
	}
}

// TestRunLoggerClose tests closing nil and open loggers.
func TestRunLoggerClose(t *testing.T) {
	var nilLogger *RunLogger
	if err := nilLogger.Close(); err != nil {
		t.Errorf("Close on nil logger: %v", err)
	}

	run, err := NewRunLogger(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := run.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"ERROR", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLogFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogFormatter(tt.input); got != tt.want {
				t.Errorf("ParseLogFormatter(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, OptionsFromConfig("warn", "text", false, false))

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "taskdash") {
		t.Errorf("expected prefixed warn entry, got %q", out)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"my-project", "my-project"},
		{"My Project", "My_Project"},
		{"a  b", "a_b"},
		{"__x__", "x"},
		{"", "project"},
		{"   ", "project"},
		{"!!!", "project"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := slugify(tt.input); got != tt.want {
				t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHashPath(t *testing.T) {
	a := hashPath("/tmp/one")
	if len(a) != 8 {
		t.Errorf("hash length = %d, want 8", len(a))
	}
	if a != hashPath("/tmp/one") {
		t.Error("hash must be stable")
	}
	if a == hashPath("/tmp/two") {
		t.Error("different paths should hash differently")
	}
}

func TestFindLatestLog(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		got, err := FindLatestLog(filepath.Join(t.TempDir(), "missing"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})

	t.Run("picks newest log file", func(t *testing.T) {
		dir := t.TempDir()
		older := filepath.Join(dir, "20240101-000000-1.log")
		newer := filepath.Join(dir, "20240102-000000-1.log")
		other := filepath.Join(dir, "notes.txt")
		for _, p := range []string{older, newer, other} {
			if err := os.WriteFile(p, []byte("x\n"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		now := time.Now()
		if err := os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour)); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(other, now.Add(time.Hour), now.Add(time.Hour)); err != nil {
			t.Fatal(err)
		}

		got, err := FindLatestLog(dir)
		if err != nil {
			t.Fatal(err)
		}
		if got != newer {
			t.Errorf("FindLatestLog = %q, want %q", got, newer)
		}

		runs, err := FindLogRuns(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(runs) != 2 || runs[1].RunID != "20240101-000000-1" {
			t.Errorf("FindLogRuns = %+v", runs)
		}
	})
}

func TestTailLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"all lines", 0, "one\ntwo\nthree\nfour\n"},
		{"last two", 2, "three\nfour\n"},
		{"more than available", 10, "one\ntwo\nthree\nfour\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := TailLog(context.Background(), &buf, path, tt.n, false); err != nil {
				t.Fatalf("TailLog: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("TailLog(n=%d) = %q, want %q", tt.n, buf.String(), tt.want)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, filepath.Join(t.TempDir(), "nope.log"), 1, false); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestTailLogFollowStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	if err := os.WriteFile(path, []byte("start\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	go func() {
		time.Sleep(50 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return
		}
		defer f.Close()
		_, _ = f.WriteString("appended\n")
	}()

	var buf syncBuffer
	if err := TailLog(ctx, &buf, path, 0, true); err != nil {
		t.Fatalf("TailLog: %v", err)
	}
	if got := buf.String(); got != "start\nappended\n" {
		t.Errorf("followed output = %q", got)
	}
}
