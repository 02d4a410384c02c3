package logging

import (
	"context"
	"log/slog"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSlogLevel(t *testing.T) {
	cases := []struct {
		in   Level
		want slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{zapcore.FatalLevel, slog.LevelError},
	}
	for _, tc := range cases {
		if got := SlogLevel(tc.in); got != tc.want {
			t.Fatalf("unexpected slog level for %s: got=%v want=%v", tc.in, got, tc.want)
		}
	}
}

func TestMirrorReceivesRecords(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	type record struct {
		level Level
		msg   string
		args  []any
	}
	var got []record
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, record{level: level, msg: msg, args: args})
	})
	defer SetMirror(nil)

	logger.InfoContext(context.Background(), "bootstrap fetched", "players", 24)
	logger.Debug("dropped by level filter")

	if len(got) != 1 {
		t.Fatalf("expected 1 mirrored record, got %d", len(got))
	}
	if got[0].msg != "bootstrap fetched" || got[0].level != LevelInfo {
		t.Fatalf("unexpected mirrored record: %+v", got[0])
	}
	if len(got[0].args) != 2 || got[0].args[0] != "players" {
		t.Fatalf("unexpected mirrored args: %v", got[0].args)
	}
}

func TestZapFields(t *testing.T) {
	t.Run("pairs become fields", func(t *testing.T) {
		fields := zapFields([]any{"team", "LIV", "price", 12.8})
		if len(fields) != 2 {
			t.Fatalf("expected 2 fields, got %d", len(fields))
		}
		if fields[0].Key != "team" {
			t.Fatalf("unexpected key: %q", fields[0].Key)
		}
	})

	t.Run("dangling value gets nil", func(t *testing.T) {
		fields := zapFields([]any{"gameweek"})
		if len(fields) != 1 {
			t.Fatalf("expected 1 field, got %d", len(fields))
		}
	})
}
