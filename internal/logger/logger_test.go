package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/logger"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.Component(logger.New(&buf, "info", "auto", false), "exam")

	log.Info().Str("test_name", "Mock Test 1").Msg("started")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "exam" || entry["message"] != "started" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "info", "pretty", false)

	log.Info().Msg("hello")

	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("pretty output looks like JSON: %q", buf.String())
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger.New(&buf, "loud", "json", false)

	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %s", zerolog.GlobalLevel())
	}
}
