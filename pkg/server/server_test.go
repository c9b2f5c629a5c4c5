/*
Copyright © 2025 Framecheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestServer(opts ...Option) *Server {
	base := []Option{WithName("test-server"), WithVersion("test")}
	return New(append(base, opts...)...)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestHandleHealthMethodNotAllowed(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleReady(t *testing.T) {
	s := newTestServer()

	t.Run("not ready before Run", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()
		s.handleReady(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "not_ready", resp.Status)
	})

	t.Run("ready once marked", func(t *testing.T) {
		s.mu.Lock()
		s.ready = true
		s.mu.Unlock()

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()
		s.handleReady(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandleDefaultListsRoutes(t *testing.T) {
	s := newTestServer(WithHandler(map[string]http.HandlerFunc{
		"/v1/validate": func(w http.ResponseWriter, r *http.Request) {},
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handleDefault(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Name   string   `json:"name"`
		Routes []string `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "test-server", resp.Name)
	assert.Contains(t, resp.Routes, "POST /v1/validate")
	assert.Contains(t, resp.Routes, "GET /health")
}

func TestMiddlewareRequestID(t *testing.T) {
	s := newTestServer()

	handler := s.withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("generates an ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/validate", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})

	t.Run("echoes a provided ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/validate", nil)
		req.Header.Set("X-Request-Id", "my-id")
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, "my-id", rec.Header().Get("X-Request-Id"))
	})
}

func TestMiddlewareRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = rate.Limit(1)
	cfg.RateLimitBurst = 1
	s := newTestServer(WithConfig(cfg))

	handler := s.withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	first := httptest.NewRecorder()
	handler(first, httptest.NewRequest(http.MethodPost, "/v1/validate", nil))
	require.Equal(t, http.StatusOK, first.Code)

	// Burst exhausted: the second immediate request is rejected.
	second := httptest.NewRecorder()
	handler(second, httptest.NewRequest(http.MethodPost, "/v1/validate", nil))
	require.Equal(t, http.StatusTooManyRequests, second.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, ErrCodeRateLimitExceeded, resp.Code)
	assert.True(t, resp.Retryable)
	assert.NotEmpty(t, resp.RequestID)
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusBadRequest, ErrCodeInvalidRequest, "bad input", false,
		map[string]interface{}{"field": "age"})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrCodeInvalidRequest, resp.Code)
	assert.Equal(t, "bad input", resp.Message)
	assert.Equal(t, "age", resp.Details["field"])
	assert.False(t, resp.Retryable)
	// No request ID in context, so one is generated.
	assert.NotEmpty(t, resp.RequestID)
}
