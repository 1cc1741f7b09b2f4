package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter_JSON(t *testing.T) {
	t.Setenv("ENV", "")
	var buf bytes.Buffer

	log := NewWithWriter(&buf, "warn", "json")
	log.Info().Msg("dropped")
	log.Warn().Str("article_id", "a-1").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if entry["service"] != ServiceName {
		t.Errorf("Expected service %q, got %v", ServiceName, entry["service"])
	}
	if entry["article_id"] != "a-1" {
		t.Errorf("Expected article_id field, got %v", entry["article_id"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"info":  zerolog.InfoLevel,
		"":      zerolog.InfoLevel,
		"loud":  zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
