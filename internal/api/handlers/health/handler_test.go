package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ok(context.Context) error { return nil }

func TestReady(t *testing.T) {
	h := NewHandler(map[string]Pinger{
		"postgres": PingFunc(ok),
		"mirror":   PingFunc(ok),
	}, time.Second, nopLogger{})

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReady_Unavailable(t *testing.T) {
	h := NewHandler(map[string]Pinger{
		"postgres": PingFunc(ok),
		"redis":    PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	}, time.Second, nopLogger{})

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Checks["postgres"])
	assert.Equal(t, "unavailable", body.Checks["redis"])
}

func TestLive(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(nil, time.Second, nopLogger{}).Live(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
