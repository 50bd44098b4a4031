package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/seuros/gopher-tape/src/parser"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", LogLevelDebug, false},
		{"INFO", LogLevelInfo, false},
		{"warning", LogLevelWarn, false},
		{"error", LogLevelError, false},
		{"none", LogLevelOff, false},
		{" off ", LogLevelOff, false},
		{"bogus", LogLevelInfo, true},
		{"", LogLevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected an error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestConsoleLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(LogLevelInfo, &buf)

	logger.Debug("debug message")
	logger.Info("info message", "key", "value")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()

	if strings.Contains(output, "debug message") {
		t.Error("Debug message should be filtered out at INFO level")
	}
	if !strings.Contains(output, "info message") {
		t.Error("Info message should be present")
	}
	if !strings.Contains(output, "key=value") {
		t.Error("Key-value pairs should be rendered")
	}
	if !strings.Contains(output, "error message") {
		t.Error("Error message should be present")
	}
	if logger.IsDebugEnabled() {
		t.Error("Debug should not be enabled at INFO level")
	}
	if !logger.IsInfoEnabled() {
		t.Error("Info should be enabled at INFO level")
	}
}

func TestLoggerOff(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(LogLevelOff, &buf)

	logger.Error("should not appear")

	if buf.Len() != 0 {
		t.Errorf("Expected no output with logging off, got %q", buf.String())
	}
}

func TestSlogLoggerFansOut(t *testing.T) {
	var text, structured bytes.Buffer
	logger := NewSlogLogger(LogLevelDebug,
		TextHandler(LogLevelDebug, &text),
		JSONHandler(LogLevelWarn, &structured),
	)

	logger.Debug("only text")
	logger.Warn("both", "cell", 3)

	if !strings.Contains(text.String(), "only text") || !strings.Contains(text.String(), "both") {
		t.Errorf("Text handler should receive every record, got %q", text.String())
	}
	if strings.Contains(structured.String(), "only text") {
		t.Error("JSON handler should filter records below WARN")
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(structured.Bytes(), &entry); err != nil {
		t.Fatalf("Expected one JSON record, got %q: %v", structured.String(), err)
	}
	if entry["msg"] != "both" {
		t.Errorf("Expected msg 'both', got %v", entry["msg"])
	}
	if entry["component"] != "gopher-tape" {
		t.Errorf("Expected component attribute, got %v", entry["component"])
	}
}

func TestInterpreterLogsRuns(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Logging.Logger = NewConsoleLogger(LogLevelDebug, &buf)

	interp, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	prog, err := parser.ParseNamed("ok.b", "+.")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := interp.Run(context.Background(), prog, nil, &bytes.Buffer{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	bad, err := parser.ParseNamed("bad.b", "<")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := interp.Run(context.Background(), bad, nil, &bytes.Buffer{}); err == nil {
		t.Fatal("Expected run to fail")
	}

	output := buf.String()
	for _, want := range []string{"Run started", "Run finished", "program=ok.b", "Run failed", "program=bad.b"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected log output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestNoOpLogger(t *testing.T) {
	logger := &NoOpLogger{}

	// Should not panic
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")

	if logger.IsDebugEnabled() || logger.IsInfoEnabled() {
		t.Error("NoOpLogger should report every level disabled")
	}
}
