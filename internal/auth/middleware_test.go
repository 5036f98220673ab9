package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func sessionCapture(out **Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*out = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func customerToken(t *testing.T) string {
	return signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user-123",
		"email": "ana@example.com",
		"role":  "customer",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
}

func adminToken(t *testing.T) string {
	return signToken(t, testSecret, jwt.MapClaims{
		"sub":   "admin-1",
		"email": "admin@example.com",
		"role":  "admin",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
}

func TestAuthenticate_NoHeaderIsAnonymous(t *testing.T) {
	mw := NewMiddleware(testGateway(""), zerolog.Nop())

	var captured *Session
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	mw.Authenticate(sessionCapture(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, captured)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	mw := NewMiddleware(testGateway(""), zerolog.Nop())

	var captured *Session
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken(t))
	rec := httptest.NewRecorder()

	mw.Authenticate(sessionCapture(&captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "user-123", captured.UserID)
	assert.Equal(t, "ana@example.com", captured.Email)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	mw := NewMiddleware(testGateway(""), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	mw.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_AUTHENTICATED")
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	mw := NewMiddleware(testGateway(""), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	mw.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth(t *testing.T) {
	mw := NewMiddleware(testGateway(""), zerolog.Nop())

	// Anonymous request is rejected
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mw.Authenticate(mw.RequireAuth(okHandler())).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated request passes
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken(t))
	rec = httptest.NewRecorder()
	mw.Authenticate(mw.RequireAuth(okHandler())).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	mw := NewMiddleware(testGateway(""), zerolog.Nop())

	// Customer is forbidden
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken(t))
	rec := httptest.NewRecorder()
	mw.Authenticate(mw.RequireAdmin(okHandler())).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")

	// Admin passes
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec = httptest.NewRecorder()
	mw.Authenticate(mw.RequireAdmin(okHandler())).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Anonymous is rejected outright
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	mw.Authenticate(mw.RequireAdmin(okHandler())).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_ProfileRoleFallback(t *testing.T) {
	// Token without any role claim forces a profile lookup
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": "user-789", "email": "ops@example.com", "role": "admin"}]`))
	}))
	defer server.Close()

	mw := NewMiddleware(testGateway(server.URL), zerolog.Nop())

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user-789",
		"email": "ops@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Authenticate(mw.RequireAdmin(okHandler())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
