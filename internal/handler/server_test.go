package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/handler"
	"github.com/pkordes/gear-planner/internal/service"
)

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"} without authentication.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(handler.Services{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON[handler.HealthResponse](t, rec)
	require.Equal(t, "ok", body.Status)
}

func TestGetOpenAPI_ServesEmbeddedDocument(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(handler.Services{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "openapi:"))
}

func TestProtectedRoutes_RequireBearerToken(t *testing.T) {
	h := newHTTPHandler(handler.Services{})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/trips", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		body := requireError(t, rec, http.StatusUnauthorized, "unauthorized")
		assert.Equal(t, "missing bearer token", body.Error.Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/gear", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		body := requireError(t, rec, http.StatusUnauthorized, "unauthorized")
		assert.Equal(t, "invalid token", body.Error.Message)
	})
}

func TestUnknownRoute_ReturnsJSON404(t *testing.T) {
	rec := doRequest(t, newHTTPHandler(handler.Services{}), http.MethodGet, "/nope", nil)
	requireError(t, rec, http.StatusNotFound, "not_found")
}

func TestUnsupportedMethod_ReturnsJSON405(t *testing.T) {
	rec := doRequest(t, newHTTPHandler(handler.Services{}), http.MethodPatch, "/healthz", nil)
	requireError(t, rec, http.StatusMethodNotAllowed, "method_not_allowed")
}

func TestAuthRoutes_AreRateLimited(t *testing.T) {
	svc := handler.Services{Auth: &mockAuthServicer{
		login: func(_ context.Context, _, _ string) (service.Token, error) {
			return service.Token{}, domain.ErrUnauthorized
		},
	}}
	h := newHTTPHandlerWith(svc, handler.RouterOptions{AuthRatePerMinute: 2})
	body := handler.LoginRequest{Username: "alice", Password: "wrongpass"}

	for range 2 {
		rec := doRequest(t, h, http.MethodPost, "/auth/login", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := doRequest(t, h, http.MethodPost, "/auth/login", body)
	requireError(t, rec, http.StatusTooManyRequests, "rate_limited")
}

func TestBodyLimit_RejectsOversizedRequests(t *testing.T) {
	h := newHTTPHandlerWith(handler.Services{Trips: &mockTripServicer{}}, handler.RouterOptions{MaxBodyBytes: 16})

	rec := doRequest(t, h, http.MethodPost, "/trips", `{"title":"`+strings.Repeat("x", 64)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestInternalErrors_AreNotLeaked(t *testing.T) {
	svc := handler.Services{Stats: &mockStatsServicer{
		list: func(context.Context, uuid.UUID) ([]domain.UsageStats, error) {
			return nil, assert.AnError
		},
	}}

	rec := doRequest(t, newHTTPHandler(svc), http.MethodGet, "/stats", nil)

	body := requireError(t, rec, http.StatusInternalServerError, "internal")
	assert.NotContains(t, body.Error.Message, assert.AnError.Error())
}
