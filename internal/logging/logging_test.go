package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yourusername/reqcache/configs"
)

func TestSetLevel(t *testing.T) {
	defer ProgramLevel.Set(slog.LevelInfo)

	tests := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}

	for _, tt := range tests {
		err := SetLevel(tt.level)
		if tt.wantErr {
			if err == nil {
				t.Errorf("SetLevel(%q): expected error, got nil", tt.level)
			}
			continue
		}
		if err != nil {
			t.Errorf("SetLevel(%q): unexpected error: %v", tt.level, err)
			continue
		}
		if ProgramLevel.Level() != tt.want {
			t.Errorf("SetLevel(%q): expected %v, got %v", tt.level, tt.want, ProgramLevel.Level())
		}
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	defer ProgramLevel.Set(slog.LevelInfo)
	ProgramLevel.Set(slog.LevelInfo)

	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "json")
	if err != nil {
		t.Fatalf("NewWithWriter failed: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("Request served", "reads", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", lines[0], err)
	}
	if entry["msg"] != "Request served" {
		t.Errorf("Expected msg 'Request served', got %v", entry["msg"])
	}
	if entry["reads"] != float64(3) {
		t.Errorf("Expected reads 3, got %v", entry["reads"])
	}

	// Level changes apply to existing loggers.
	ProgramLevel.Set(slog.LevelDebug)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("Expected debug line after lowering the level")
	}
}

func TestNewWithWriterInvalidFormat(t *testing.T) {
	if _, err := NewWithWriter(&bytes.Buffer{}, "xml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestNewFileOutput(t *testing.T) {
	defer ProgramLevel.Set(slog.LevelInfo)

	path := filepath.Join(t.TempDir(), "reqcache.log")
	logger, closer, err := New(configs.LogConfig{
		Level:    "info",
		Format:   "text",
		Output:   "file",
		FilePath: path,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("Server started", "addr", ":8080")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Server started") {
		t.Errorf("Expected log file to contain the message, got %q", string(data))
	}
}

func TestNewInvalid(t *testing.T) {
	if _, _, err := New(configs.LogConfig{Level: "info", Format: "text", Output: "syslog"}); err == nil {
		t.Error("Expected error for unsupported output")
	}
	if _, _, err := New(configs.LogConfig{Level: "nope", Format: "text", Output: "stderr"}); err == nil {
		t.Error("Expected error for invalid level")
	}
}
