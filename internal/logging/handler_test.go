package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	now := time.Now()
	logger.Info("installing package", "package", "babel-preset-react")

	output := buf.String()
	for _, want := range []string{"INFO", "installing package", "package=babel-preset-react"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
	if !strings.Contains(output, now.Format(time.Kitchen)) {
		t.Errorf("expected time %q in output, got: %q", now.Format(time.Kitchen), output)
	}
}

func TestHandler_QuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Warn("install failed", "error", "exit status 1: not found")

	if !strings.Contains(buf.String(), `error="exit status 1: not found"`) {
		t.Errorf("expected quoted value, got %q", buf.String())
	}
}

func TestHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).WithGroup("pass")

	logger.Info("done", "changed", true, slog.Group("capability", "name", "react"))

	out := buf.String()
	if !strings.Contains(out, "pass.changed=true") {
		t.Errorf("missing group prefix: %q", out)
	}
	if !strings.Contains(out, "pass.capability.name=react") {
		t.Errorf("missing nested group: %q", out)
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestHandler_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(t.Context(), LevelTrace, "token")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE label, got %q", buf.String())
	}
}
