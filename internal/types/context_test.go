package types

import (
	"context"
	"testing"
)

// mockLogger implements the Logger interface for testing purposes.
type mockLogger struct {
	messages []string
}

func (m *mockLogger) Info(msg string, args ...any)  { m.messages = append(m.messages, "info:"+msg) }
func (m *mockLogger) Error(msg string, args ...any) { m.messages = append(m.messages, "error:"+msg) }
func (m *mockLogger) Warn(msg string, args ...any)  { m.messages = append(m.messages, "warn:"+msg) }
func (m *mockLogger) With(args ...any) Logger       { return m }

func TestWithRequestID_GetRequestID(t *testing.T) {
	t.Run("round-trip", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-123")
		if got := GetRequestID(ctx); got != "req-123" {
			t.Errorf("GetRequestID() = %q, want %q", got, "req-123")
		}
	})

	t.Run("missing returns empty string", func(t *testing.T) {
		if got := GetRequestID(context.Background()); got != "" {
			t.Errorf("GetRequestID() = %q, want empty", got)
		}
	})
}

func TestWithLogger_LoggerFromContext(t *testing.T) {
	t.Run("round-trip", func(t *testing.T) {
		l := &mockLogger{}
		ctx := WithLogger(context.Background(), l)
		got := LoggerFromContext(ctx)
		if got == nil {
			t.Fatal("expected logger, got nil")
		}
		got.Info("hello")
		if len(l.messages) != 1 || l.messages[0] != "info:hello" {
			t.Errorf("messages = %v", l.messages)
		}
	})

	t.Run("missing returns nil", func(t *testing.T) {
		if got := LoggerFromContext(context.Background()); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	if l.With("k", "v") == nil {
		t.Error("With() should return a usable logger")
	}
}
