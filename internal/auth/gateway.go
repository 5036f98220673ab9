package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"onsen-store/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// tokenClaims are the claims the auth backend places in its access
// tokens. The role may live at the top level or under app_metadata
// depending on how the account was provisioned.
type tokenClaims struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	AppMetadata struct {
		Role string `json:"role"`
	} `json:"app_metadata"`
	jwt.RegisteredClaims
}

// httpGateway talks to the external auth backend: HS256 token
// verification locally, profile lookups over its REST interface.
type httpGateway struct {
	baseURL   string
	anonKey   string
	jwtSecret []byte
	client    *http.Client
	logger    zerolog.Logger
}

// NewGateway creates a Gateway for the configured auth backend.
func NewGateway(cfg config.AuthConfig, logger zerolog.Logger) Gateway {
	return &httpGateway{
		baseURL:   cfg.BaseURL,
		anonKey:   cfg.AnonKey,
		jwtSecret: []byte(cfg.JWTSecret),
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger.With().Str("component", "auth-gateway").Logger(),
	}
}

// SessionFromToken verifies a bearer token and returns the session it
// encodes.
func (g *httpGateway) SessionFromToken(token string) (*Session, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	role := claims.AppMetadata.Role
	if role == "" {
		role = claims.Role
	}

	return &Session{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   role,
	}, nil
}

// Profile fetches the profile record for a user ID from the backend's
// REST interface.
func (g *httpGateway) Profile(ctx context.Context, userID string) (*Profile, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/profiles?id=eq.%s", g.baseURL, url.QueryEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile request: %w", err)
	}
	req.Header.Set("apikey", g.anonKey)
	req.Header.Set("Authorization", "Bearer "+g.anonKey)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error().Err(err).Str("user_id", userID).Msg("profile request failed")
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Error().
			Int("status", resp.StatusCode).
			Str("user_id", userID).
			Msg("profile request returned unexpected status")
		return nil, fmt.Errorf("profile request returned status %d", resp.StatusCode)
	}

	var profiles []Profile
	if err := json.NewDecoder(resp.Body).Decode(&profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("profile not found for user %s", userID)
	}

	return &profiles[0], nil
}
