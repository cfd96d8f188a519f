package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf)

	log.Info("signed in", map[string]interface{}{"user": "u1"})
	log.Error("request failed", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}

	var first, second LogEvent
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("line 2: %v", err)
	}

	if first.Level != "info" || first.Message != "signed in" {
		t.Fatalf("first event: %+v", first)
	}
	if first.Fields["user"] != "u1" {
		t.Fatalf("fields: %v", first.Fields)
	}
	if second.Level != "error" || second.Message != "request failed" {
		t.Fatalf("second event: %+v", second)
	}
	if first.Run == "" || first.Run != second.Run {
		t.Fatalf("run ids: %q vs %q", first.Run, second.Run)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var log *Logger
	log.Info("ignored", nil)
	log.Error("ignored", nil)
}
