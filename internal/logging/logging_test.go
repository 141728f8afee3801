package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_CreatesFileAndWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(dir, "debug"); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	t.Cleanup(Close)

	if got := Path(); got != filepath.Join(dir, FileName) {
		t.Fatalf("Path = %q, want %q", got, filepath.Join(dir, FileName))
	}

	Info("search issued", "query", "matrix")
	Debug("search discarded", "gen", 3)

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "search issued") || !strings.Contains(text, "query=matrix") {
		t.Fatalf("log file = %q, want info line with query", text)
	}
	if !strings.Contains(text, "search discarded") {
		t.Fatalf("log file = %q, want debug line", text)
	}
}

func TestInit_EmptyDirErrors(t *testing.T) {
	if err := Init("  ", "info"); err == nil {
		t.Fatalf("Init returned nil error, want error")
	}
}

func TestSetOutput_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "warn")
	t.Cleanup(Close)

	Info("hidden")
	Warn("visible", "key", "value")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("output = %q, info should be filtered at warn level", buf.String())
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("output = %q, want warn line", buf.String())
	}
}

func TestHelpers_NoopWithoutLogger(t *testing.T) {
	Close()
	Debug("a")
	Info("b")
	Warn("c")
	Error("d")
	if Path() != "" {
		t.Fatalf("Path = %q, want empty after Close", Path())
	}
}
