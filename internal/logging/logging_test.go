package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"trace", zerolog.TraceLevel, true},
		{" DEBUG ", zerolog.DebugLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseLevel(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestNewJSON(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")

	var out bytes.Buffer
	logger := New(&out, Options{Level: "warn", Format: "json"})

	logger.Info().Msg("hidden")
	logger.Warn().Str("kind", "truncated_input").Msg("decode rejected")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"level":"warn"`)
	assert.Contains(t, out.String(), `"app":"mimictl"`)
	assert.Contains(t, out.String(), `"kind":"truncated_input"`)
}

func TestNewEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "json")

	var out bytes.Buffer
	logger := New(&out, Options{Level: "error", Format: "console"})
	logger.Debug().Msg("visible")

	assert.Contains(t, out.String(), `"message":"visible"`)
}

func TestNewConsole(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")

	var out bytes.Buffer
	logger := New(&out, Options{Level: "info"})
	logger.Info().Msg("hello")

	assert.Contains(t, out.String(), "hello")
	assert.NotContains(t, out.String(), `"message"`)
}
