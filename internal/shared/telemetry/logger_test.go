package telemetry

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) []byte {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	_ = w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return out
}

func TestInfoWritesJSONLine(t *testing.T) {
	if err := Init(LogOptions{Level: "info"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	out := captureStdout(t, func() {
		Info("catalog.loaded", map[string]any{"roles": 10, "source": "embedded"})
	})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(out), &entry); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if entry["msg"] != "catalog.loaded" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["source"] != "embedded" || entry["roles"] != float64(10) {
		t.Fatalf("missing fields: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts field: %v", entry)
	}
}

func TestLevelFiltersLowerEntries(t *testing.T) {
	if err := Init(LogOptions{Level: "error"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { _ = Init(LogOptions{}) })

	out := captureStdout(t, func() {
		Info("dropped", nil)
		Warn("dropped", nil)
		Error("kept", nil)
	})
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], `"msg":"kept"`) {
		t.Fatalf("expected only the error line, got %q", out)
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init(LogOptions{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestInitWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := Init(LogOptions{File: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { _ = Init(LogOptions{}) })

	captureStdout(t, func() {
		Info("to.file", map[string]any{"k": "v"})
	})
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to.file"`) {
		t.Fatalf("expected entry in log file, got %q", data)
	}
}
