// ABOUTME: Tests for logger construction helpers.
// ABOUTME: Checks level parsing, formatter selection and output routing.

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harper/todo/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"DEBUG":   log.DebugLevel,
		"info":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"bogus":   log.InfoLevel,
		"":        log.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LogConfig{Level: "debug", Format: "json"})

	logger.Debug("created todo", "id", "abc")

	out := buf.String()
	if !strings.Contains(out, `"msg":"created todo"`) {
		t.Errorf("expected JSON message in output: %s", out)
	}
	if !strings.Contains(out, `"id":"abc"`) {
		t.Errorf("expected id field in output: %s", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Errorf("expected prefix in output: %s", out)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LogConfig{Level: "warn"})

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}
}
