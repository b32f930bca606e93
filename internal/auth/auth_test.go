package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/gear-planner/internal/auth"
	"github.com/pkordes/gear-planner/internal/domain"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestNewJWTManager_ShortSecret(t *testing.T) {
	_, err := auth.NewJWTManager("short", time.Hour)
	assert.Error(t, err)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m, err := auth.NewJWTManager(secret, time.Hour)
	require.NoError(t, err)
	user := domain.User{ID: uuid.New(), Username: "alice"}

	token, expires, err := m.GenerateToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	id, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestJWTManager_Expired(t *testing.T) {
	m, err := auth.NewJWTManager(secret, -time.Minute)
	require.NoError(t, err)

	token, _, err := m.GenerateToken(domain.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	issuer, _ := auth.NewJWTManager(secret, time.Hour)
	verifier, _ := auth.NewJWTManager("ffffffffffffffffffffffffffffffff", time.Hour)

	token, _, err := issuer.GenerateToken(domain.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPassword(t *testing.T) {
	hash, err := auth.HashPassword("trail-mix-42")
	require.NoError(t, err)

	assert.NoError(t, auth.CheckPassword(hash, "trail-mix-42"))
	assert.ErrorIs(t, auth.CheckPassword(hash, "wrong"), domain.ErrUnauthorized)
}

func TestRequireUser(t *testing.T) {
	m, err := auth.NewJWTManager(secret, time.Hour)
	require.NoError(t, err)
	user := domain.User{ID: uuid.New(), Username: "alice"}
	token, _, err := m.GenerateToken(user)
	require.NoError(t, err)

	var seen uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	unauthorized := func(w http.ResponseWriter, _ *http.Request, err error) {
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		w.WriteHeader(http.StatusUnauthorized)
	}
	h := auth.RequireUser(m, unauthorized)(next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + token, http.StatusNoContent},
		{"lowercase scheme", "bearer " + token, http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seen = uuid.Nil
			req := httptest.NewRequest(http.MethodGet, "/gear", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusNoContent {
				assert.Equal(t, user.ID, seen)
			}
		})
	}
}

func TestUserSlot(t *testing.T) {
	outer := auth.WithUserSlot(context.Background())
	_, ok := auth.UserIDFromContext(outer)
	assert.False(t, ok)

	id := uuid.New()
	inner := auth.WithUserID(outer, id)

	got, ok := auth.UserIDFromContext(outer)
	require.True(t, ok, "outer context sees the user set downstream")
	assert.Equal(t, id, got)
	got, _ = auth.UserIDFromContext(inner)
	assert.Equal(t, id, got)

	_, ok = auth.UserIDFromContext(context.Background())
	assert.False(t, ok)
}
