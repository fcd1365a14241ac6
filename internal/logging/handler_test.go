package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func prettyLine(t *testing.T, h slog.Handler, level slog.Level, msg string, args ...any) {
	t.Helper()
	r := slog.NewRecord(time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC), level, msg, 0)
	r.Add(args...)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}
}

func TestPrettyHandler_TurnContextPrefix(t *testing.T) {
	var buf bytes.Buffer
	h := newPrettyHandler(&buf, slog.LevelInfo).
		WithAttrs([]slog.Attr{slog.String("harness", "claude"), slog.String("turn_id", "turn-3")})

	prettyLine(t, h, slog.LevelInfo, "spawning binary", "path", "/usr/bin/claude")

	out := buf.String()
	if !strings.Contains(out, "[claude turn-3]") {
		t.Errorf("context prefix missing: %q", out)
	}
	if !strings.Contains(out, "spawning binary") || !strings.Contains(out, "path") {
		t.Errorf("output = %q", out)
	}
	// Promoted attrs must not repeat in the key=value tail.
	if strings.Contains(out, "harness") || strings.Contains(out, "turn_id") {
		t.Errorf("context attrs duplicated: %q", out)
	}
}

func TestPrettyHandler_ContextOrderIsStable(t *testing.T) {
	var buf bytes.Buffer
	// session_id attached before harness; the prefix still renders
	// harness first.
	h := newPrettyHandler(&buf, slog.LevelInfo).
		WithAttrs([]slog.Attr{slog.String("session_id", "ses-9"), slog.String("harness", "gemini")})

	prettyLine(t, h, slog.LevelInfo, "resumed")

	if !strings.Contains(buf.String(), "[gemini ses-9]") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrettyHandler_LevelBadges(t *testing.T) {
	tests := []struct {
		level slog.Level
		badge string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		h := newPrettyHandler(&buf, slog.LevelDebug)
		prettyLine(t, h, tt.level, "x")
		if !strings.Contains(buf.String(), tt.badge) {
			t.Errorf("level %v output = %q, want badge %s", tt.level, buf.String(), tt.badge)
		}
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := newPrettyHandler(&bytes.Buffer{}, slog.LevelWarn)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestPrettyHandler_GroupQualifiesKeys(t *testing.T) {
	var buf bytes.Buffer
	h := newPrettyHandler(&buf, slog.LevelInfo).WithGroup("proc")

	prettyLine(t, h, slog.LevelInfo, "exited", "code", 0)

	if !strings.Contains(buf.String(), "proc.code") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRedactingHandler_GroupedAttrs(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(redactingHandler{next: inner})

	logger.Info("x", slog.Group("auth", slog.String("header", "Bearer eyJhbGciOiJIUzI1NiIsdXyZ")))

	if strings.Contains(buf.String(), "eyJhbGciOiJIUzI1NiIsdXyZ") {
		t.Errorf("credential leaked inside group: %s", buf.String())
	}
}
