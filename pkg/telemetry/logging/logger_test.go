package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("submission complete", "doc_id", "doc-1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "submission complete" || entry["doc_id"] != "doc-1" {
		t.Errorf("Unexpected log entry: %v", entry)
	}
}

func TestSetup_TextFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Setup(Config{Level: "warn", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("should be filtered")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Error("Info line leaked past warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("Warn line missing")
	}
}

func TestSetup_InvalidFormat(t *testing.T) {
	if _, err := Setup(Config{Format: "xml"}); err == nil {
		t.Error("Expected error for invalid format")
	}
}
