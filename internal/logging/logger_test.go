package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewWithFormat_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithFormat(&buf, slog.LevelInfo, FormatText)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("failed", "error", errors.New("boom"))
	if !strings.Contains(buf.String(), "err=boom") {
		t.Errorf("expected err key, got %q", buf.String())
	}
}

func TestNewWithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithFormat(&buf, slog.LevelWarn, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("dropped")
	logger.Warn("kept", "n", 1)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "kept" {
		t.Errorf("msg = %v, want kept", line["msg"])
	}
}

func TestNewWithFormat_Unknown(t *testing.T) {
	if _, err := NewWithFormat(&bytes.Buffer{}, slog.LevelInfo, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
