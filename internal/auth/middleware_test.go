package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rideconnect/rideconnect-api/internal/httputil"
)

func authenticate(t *testing.T, mw *Middleware, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		_, ok := CurrentUser(r.Context())
		assert.True(t, ok, "handler must see the resolved user")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)
	return rec, handlerCalled
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Code
}

func TestRequireAuth(t *testing.T) {
	tokens, err := NewPasetoService(testKey)
	require.NoError(t, err)

	store := newMemUserStore()
	mw := NewMiddleware(tokens, store)

	created, err := store.Create(context.Background(), "Maya Sharma", "maya@example.com", "hash", "question?", "answerhash")
	require.NoError(t, err)

	validToken, err := tokens.CreateToken(created.ID, time.Hour)
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		rec, called := authenticate(t, mw, "")
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, httputil.CodeMissingAuth, errorCode(t, rec))
	})

	t.Run("malformed header", func(t *testing.T) {
		rec, called := authenticate(t, mw, "Token abc")
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, httputil.CodeInvalidAuthHeader, errorCode(t, rec))
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, called := authenticate(t, mw, "Bearer garbage")
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec, called := authenticate(t, mw, "Bearer "+validToken)
		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid token for deleted user", func(t *testing.T) {
		ghost, err := store.Create(context.Background(), "Ghost", "ghost@example.com", "hash", "question?", "answerhash")
		require.NoError(t, err)

		ghostToken, err := tokens.CreateToken(ghost.ID, time.Hour)
		require.NoError(t, err)

		store.delete(ghost.ID)

		rec, called := authenticate(t, mw, "Bearer "+ghostToken)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, httputil.CodeUnknownSubject, errorCode(t, rec))
	})
}
