package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFromContextFallsBack(t *testing.T) {
	if LoggerFromContext(nil) == nil {
		t.Fatal("nil context must fall back to the global logger")
	}
	if LoggerFromContext(context.Background()) == nil {
		t.Fatal("bare context must fall back to the global logger")
	}
}

func TestContextCarriesScopedLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	scoped := zap.New(core)

	ctx := contextWithLogger(context.Background(), scoped)
	LogInfo(ctx, "hello", zap.String("k", "v"))

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "hello" {
		t.Errorf("unexpected message %q", entry.Message)
	}
}

func TestRequestIDFromContext(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}

	ctx := contextWithRequestID(context.Background(), "req-7")
	if got := RequestIDFromContext(ctx); got != "req-7" {
		t.Errorf("expected req-7, got %q", got)
	}

	// Blank ids are not stored.
	ctx = contextWithRequestID(context.Background(), "")
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
}

func TestLogErrorAppendsErrorField(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	ctx := contextWithLogger(context.Background(), zap.New(core))

	LogError(ctx, "boom", context.Canceled)

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["error"] != context.Canceled.Error() {
		t.Errorf("expected error field, got %v", fields)
	}
}
