package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Service   string `json:"service,omitempty"`
	RunID     string `json:"run_id,omitempty"`
}

func TestLoggerPrintfIncludesRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "atm-test")

	ctx := WithCorrelationID(context.Background(), "run-123")
	logger.Printf(ctx, "hello %s", "world")

	var entry logEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal log entry: %v", err)
	}

	if entry.Level != "info" {
		t.Fatalf("expected level info, got %s", entry.Level)
	}
	if entry.Message != "hello world" {
		t.Fatalf("unexpected message: %s", entry.Message)
	}
	if entry.Service != "atm-test" {
		t.Fatalf("unexpected service: %s", entry.Service)
	}
	if entry.RunID != "run-123" {
		t.Fatalf("expected run id run-123, got %s", entry.RunID)
	}
	if strings.TrimSpace(entry.Timestamp) == "" {
		t.Fatalf("expected timestamp to be populated")
	}
}

func TestLoggerPrintlnOmitsEmptyRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "")

	logger.Println(context.Background(), "message")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry: %v", err)
	}

	if _, ok := entry["run_id"]; ok {
		t.Fatalf("expected run_id to be omitted, got %v", entry["run_id"])
	}
	if _, ok := entry["service"]; ok {
		t.Fatalf("expected service to be omitted, got %v", entry["service"])
	}
}

func TestLoggerWarnfAndErrorfLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "atm-test")

	logger.Warnf(context.Background(), "caution %d", 1)
	logger.Errorf(context.Background(), "broken %d", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lines))
	}

	var warn, fail logEntry
	if err := json.Unmarshal([]byte(lines[0]), &warn); err != nil {
		t.Fatalf("failed to decode warn entry: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &fail); err != nil {
		t.Fatalf("failed to decode error entry: %v", err)
	}

	if warn.Level != "warn" || warn.Message != "caution 1" {
		t.Fatalf("unexpected warn entry: %+v", warn)
	}
	if fail.Level != "error" || fail.Message != "broken 2" {
		t.Fatalf("unexpected error entry: %+v", fail)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Printf(context.Background(), "ignored")
	logger.Println(context.Background(), "ignored")
	logger.Warnf(context.Background(), "ignored")
	logger.Errorf(context.Background(), "ignored")
}

func TestCorrelationIDFromContextDefaults(t *testing.T) {
	if got := CorrelationIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty correlation id, got %q", got)
	}
	ctx := WithCorrelationID(context.Background(), "  spaced  ")
	if got := CorrelationIDFromContext(ctx); got != "spaced" {
		t.Fatalf("expected trimmed correlation id, got %q", got)
	}
}
