package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/AlibekovAA/movie-watchlist/internal/common/constants"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "api", "warning")

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info message to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARNING] [api]") || !strings.Contains(out, "shown") {
		t.Errorf("expected warning line with service prefix, got %q", out)
	}
}

func TestLogger_WithFields_SortedAndTraced(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "api", "debug")

	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "abc123")
	log.WithFields(ctx, Fields{"user_id": 7, "action": "login_success"}).Info("login success")

	out := buf.String()
	if !strings.Contains(out, "[trace_id=abc123 action=login_success user_id=7]") {
		t.Errorf("unexpected field rendering: %q", out)
	}
}

func TestLogger_ShouldLog(t *testing.T) {
	log := NewWithWriter(&bytes.Buffer{}, "", "error")

	if log.ShouldLog(DEBUG) {
		t.Error("debug should be disabled at error level")
	}
	if !log.ShouldLog(CRITICAL) {
		t.Error("critical should be enabled at error level")
	}

	log.SetLevel("debug")
	if !log.ShouldLog(DEBUG) {
		t.Error("debug should be enabled after SetLevel")
	}
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	if got := parseLevel("nonsense"); got != INFO {
		t.Errorf("expected INFO, got %v", got)
	}
	if got := parseLevel(" warn "); got != WARNING {
		t.Errorf("expected WARNING, got %v", got)
	}
}

func TestNew_WithLogDir(t *testing.T) {
	dir := t.TempDir()

	log, err := New(dir, "api", "info")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer log.Close()

	log.Info("written to file")
}

func TestLogger_StdLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "api", "info")

	log.StdLogger(WARNING).Printf("http: TLS handshake error")

	out := buf.String()
	if !strings.Contains(out, "[WARNING] [api]") || !strings.Contains(out, "TLS handshake error") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected a single line, got %q", out)
	}
}
