package cartstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"onsen-store/internal/model"
	"onsen-store/internal/redisclient"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// redisStore implements Store on Redis. Each session cart lives under
// its own key with a sliding TTL.
type redisStore struct {
	client *redisclient.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed cart store.
func NewRedisStore(client *redisclient.Client, ttl time.Duration, logger zerolog.Logger) Store {
	return &redisStore{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "cart-store").Logger(),
	}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// Load returns the cart for a session, or an empty cart when none is
// stored.
func (s *redisStore) Load(ctx context.Context, sessionID string) (*model.Cart, error) {
	data, err := s.client.Raw().Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return model.NewCart(), nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart model.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		// An unreadable cart is treated as absent rather than wedging
		// the session.
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("discarding corrupt cart payload")
		return model.NewCart(), nil
	}

	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}

	return &cart, nil
}

// Save replaces the stored cart for a session and refreshes its TTL.
func (s *redisStore) Save(ctx context.Context, sessionID string, cart *model.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := s.client.Raw().Set(ctx, cartKey(sessionID), data, s.ttl).Err(); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Int("items", len(cart.Items)).
		Msg("cart saved")

	return nil
}

// Clear deletes the stored cart for a session.
func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Raw().Del(ctx, cartKey(sessionID)).Err(); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
