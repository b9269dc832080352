package logging

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  bolt.Level
	}{
		{"trace", bolt.TRACE},
		{"debug", bolt.DEBUG},
		{"info", bolt.INFO},
		{"WARN", bolt.WARN},
		{"warning", bolt.WARN},
		{"error", bolt.ERROR},
		{"", bolt.INFO},
		{"verbose", bolt.INFO},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestFields(t *testing.T) {
	var (
		buf    bytes.Buffer
		logger = New(Config{Level: "debug", Format: "json", Output: &buf})
		event  = &LogEvent{event: logger.Info()}
	)
	event.With(
		Panel("risk"),
		Bars(10),
		RequestID("req-1"),
		Duration(1500*time.Millisecond),
		Cached(true),
		ErrorField(errors.New("boom")),
		ErrorField(nil),
	).Msg("panel rendered")

	out := buf.String()
	assert.Contains(t, out, `"panel":"risk"`)
	assert.Contains(t, out, `"bars":10`)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"duration_ms":1500`)
	assert.Contains(t, out, `"cached":true`)
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "panel rendered")
}

func TestLevelFiltering(t *testing.T) {
	var (
		buf    bytes.Buffer
		logger = New(Config{Level: "warn", Format: "json", Output: &buf})
	)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
