package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(parseLevel("warn"))

	log.Info().Msg("suppressed")
	log.Warn().Msg("visible")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line should be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn line missing, got %q", out)
	}
}

func TestNewReturnsConfiguredLevel(t *testing.T) {
	log := New(Config{Level: "error", Format: "json"})
	if log.GetLevel() != zerolog.ErrorLevel {
		t.Fatalf("expected error level, got %v", log.GetLevel())
	}

	console := New(Config{Level: "debug", Format: "console"})
	if console.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v", console.GetLevel())
	}
}
