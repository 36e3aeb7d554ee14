// Descubre - Tourism Destination Directory and Search API
// Copyright 2026 Descubre Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/descubre-mx/descubre

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestInitDefaults(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("key", "value").Msg("hello")

	output := buf.String()
	if !strings.Contains(output, `"message":"hello"`) {
		t.Errorf("expected JSON message field, got: %s", output)
	}
	if !strings.Contains(output, `"key":"value"`) {
		t.Errorf("expected structured field, got: %s", output)
	}
	if !strings.Contains(output, `"time":`) {
		t.Errorf("expected timestamp field, got: %s", output)
	}
}

func TestInitLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("filtered")
	Warn().Msg("emitted")

	output := buf.String()
	if strings.Contains(output, "filtered") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(output, "emitted") {
		t.Error("warn message should be emitted")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestJSONOutputParses(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Output: &buf})
	defer Init(DefaultConfig())

	Debug().Int("count", 42).Msg("parsed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry["level"] != "debug" {
		t.Errorf("expected level debug, got %v", entry["level"])
	}
	if entry["count"] != float64(42) {
		t.Errorf("expected count 42, got %v", entry["count"])
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Output: &buf})
	defer Init(DefaultConfig())

	searchLogger := WithComponent("search")
	searchLogger.Info().Msg("ready")

	if !strings.Contains(buf.String(), `"component":"search"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}

func TestSetLevelString(t *testing.T) {
	defer Init(DefaultConfig())

	SetLevelString("error")
	if GetLevel() != zerolog.ErrorLevel {
		t.Errorf("expected error level, got %v", GetLevel())
	}

	SetLevelString("debug")
	if GetLevel() != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %v", GetLevel())
	}
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)
	logger.Info().Msg("captured")

	if !strings.Contains(buf.String(), "captured") {
		t.Errorf("expected captured output, got: %s", buf.String())
	}
}
