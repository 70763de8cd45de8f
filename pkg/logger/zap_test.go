package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesKeysAndValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLoggerFrom(zap.New(core))

	l.Warn("failed to write persistent cache entry", "url", "https://tiles/1/0/0.pbf", "error", "disk full")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", e.Level)
	}
	fields := e.ContextMap()
	if fields["url"] != "https://tiles/1/0/0.pbf" {
		t.Errorf("url field = %v", fields["url"])
	}
}

func TestToZapLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"nonsense", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := toZapLevel(tt.in); got != tt.want {
			t.Errorf("toZapLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromContext(t *testing.T) {
	if _, ok := FromContext(context.Background()).(*noOpLogger); !ok {
		t.Errorf("FromContext without logger should return no-op logger")
	}

	l := NewNop()
	ctx := WithLogger(context.Background(), l)
	if FromContext(ctx) != l {
		t.Errorf("FromContext did not return stored logger")
	}

	if OrNop(nil) == nil {
		t.Errorf("OrNop(nil) returned nil")
	}
}
