package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesKeyValues(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := NewLogger(zap.New(core)).With("submissionId", "abc")

	logger.Info("Evaluation finished", "status", "Accepted", "passed", 3)
	logger.Warn("Batch still running", "attempt", 2)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["submissionId"] != "abc" {
		t.Fatalf("missing inherited field: %v", fields)
	}
	if fields["status"] != "Accepted" {
		t.Fatalf("unexpected status field: %v", fields)
	}
	if entries[1].Level != zap.WarnLevel {
		t.Fatalf("unexpected level: %v", entries[1].Level)
	}
}

func TestNewZapLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := NewZapLogger("loud"); err == nil {
		t.Fatalf("expected error")
	}
	logger, err := NewZapLogger("debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Debug("ok")
}
