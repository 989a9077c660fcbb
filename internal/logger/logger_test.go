package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level, "text")
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  logrus.Level
	}{
		{"debug", "debug", logrus.DebugLevel},
		{"upper case", "WARN", logrus.WarnLevel},
		{"warning alias", "warning", logrus.WarnLevel},
		{"error", "error", logrus.ErrorLevel},
		{"unknown defaults to info", "verbose", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.level); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "text")
	ctx := context.Background()

	log.Debug(ctx, "hidden message")
	log.Info(ctx, "visible message: %s %d", "test", 123)

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "visible message: test 123") {
		t.Errorf("info line missing: %q", out)
	}
}

func TestJSONFormatCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", "json")
	ctx := WithRunID(context.Background(), "run-42")

	log.Warn(ctx, "segment %d rejected", 3)

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["run_id"] != "run-42" {
		t.Errorf("run_id = %v, want run-42", line["run_id"])
	}
	if line["msg"] != "segment 3 rejected" {
		t.Errorf("msg = %v", line["msg"])
	}
	if line["level"] != "warning" {
		t.Errorf("level = %v, want warning", line["level"])
	}
}

func TestRunIDEmpty(t *testing.T) {
	if got := RunID(context.Background()); got != "" {
		t.Errorf("RunID() = %q, want empty", got)
	}
}
