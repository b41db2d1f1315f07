// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestConfigure_ServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "svc", Version: "v1"})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("dvr")
	l.Info().Str(FieldEvent, "booking.added").Msg("hello")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "svc", lines[0][FieldService])
	assert.Equal(t, "v1", lines[0][FieldVersion])
	assert.Equal(t, "dvr", lines[0][FieldComponent])
	assert.Equal(t, "booking.added", lines[0][FieldEvent])
}

func TestConsoleWriter_GlobalLevelGates(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: ConsoleWriter(&buf)})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("dvr")
	l.Debug().Msg("hidden debug")
	l.Info().Msg("hidden info")
	l.Warn().Msg("shown warning")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warning")
	assert.False(t, strings.HasPrefix(out, "{"), "console output is not JSON")
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	require.Error(t, SetLevel("loud"))
}

func TestContextWithRequestID(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		requestID string
	}{
		{"nil context", nil, "test-id-123"},
		{"background context", context.Background(), "req-456"},
		{"empty request ID", context.Background(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ContextWithRequestID(tt.ctx, tt.requestID)
			assert.Equal(t, tt.requestID, RequestIDFromContext(ctx))
		})
	}
	assert.Empty(t, RequestIDFromContext(nil))
}

func TestWithContext_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	logger := WithContext(ContextWithRequestID(context.Background(), "abc"), l)
	logger.Info().Msg("x")
	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "abc", lines[0][FieldRequestID])
}

func TestMiddleware_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "info", Output: &buf})
	t.Cleanup(func() { Configure(Config{}) })

	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEqual(t, zerolog.Disabled, zerolog.Ctx(r.Context()).GetLevel())
		w.WriteHeader(http.StatusConflict)
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, float64(http.StatusConflict), lines[0][FieldStatus])
	assert.Equal(t, "/api/v1/bookings", lines[0][FieldPath])
}
