package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"onsen-store/internal/model"

	"github.com/rs/zerolog"
)

type contextKey string

const sessionKey contextKey = "auth-session"

// SessionFromContext returns the session attached to the request
// context, or nil for anonymous requests.
func SessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionKey).(*Session)
	return session
}

// Middleware attaches authentication to the request pipeline.
type Middleware struct {
	gateway Gateway
	logger  zerolog.Logger
}

// NewMiddleware creates authentication middleware backed by the given
// gateway.
func NewMiddleware(gateway Gateway, logger zerolog.Logger) *Middleware {
	return &Middleware{
		gateway: gateway,
		logger:  logger.With().Str("middleware", "auth").Logger(),
	}
}

// Authenticate resolves the Authorization header into a session when
// present. Requests without a bearer token pass through as anonymous;
// requests with an invalid token are rejected.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			writeAuthError(w, http.StatusUnauthorized, model.ErrCodeNotAuthenticated, "Malformed authorization header")
			return
		}

		session, err := m.gateway.SessionFromToken(token)
		if err != nil {
			m.logger.Debug().Err(err).Msg("token verification failed")
			writeAuthError(w, http.StatusUnauthorized, model.ErrCodeNotAuthenticated, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that did not present a valid session.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			writeAuthError(w, http.StatusUnauthorized, model.ErrCodeNotAuthenticated, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose session lacks the admin role.
// When the token itself does not carry a role, the profile record is
// consulted before rejecting.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := SessionFromContext(r.Context())
		if session == nil {
			writeAuthError(w, http.StatusUnauthorized, model.ErrCodeNotAuthenticated, "Authentication required")
			return
		}

		if !session.IsAdmin() && session.Role == "" {
			profile, err := m.gateway.Profile(r.Context(), session.UserID)
			if err == nil {
				session.Role = profile.Role
			} else {
				m.logger.Warn().Err(err).Str("user_id", session.UserID).Msg("profile role lookup failed")
			}
		}

		if !session.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, model.ErrCodeForbidden, "Admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Error:   code,
		Message: message,
	})
}
