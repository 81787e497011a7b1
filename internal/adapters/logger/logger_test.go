package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"Error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestStdLogger_FiltersAndFormats(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLoggerTo(&buf, LevelInfo)
	ctx := context.Background()

	l.Debug(ctx, "hidden")
	l.Info(ctx, "Wrote ticker", map[string]interface{}{"ticker": "ABC", "rows": 24})
	l.Error(ctx, errors.New("boom"), "Write failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] Wrote ticker | rows=24 ticker=ABC")
	assert.Contains(t, out, "[ERROR] Write failed | error: boom")
}

func TestZerologLogger_EmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, LevelWarn)
	ctx := context.Background()

	l.Info(ctx, "hidden")
	l.Warn(ctx, "Period count mismatch", map[string]interface{}{"ticker": "ABC"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Period count mismatch", entry["message"])
	assert.Equal(t, "ABC", entry["ticker"])
}
