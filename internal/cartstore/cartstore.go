package cartstore

import (
	"context"

	"onsen-store/internal/model"
)

// Store persists session carts. The stored cart is the single source of
// truth: callers load it, mutate the returned value and save it back,
// and the saved state is what every subsequent load observes. Two
// overlapping writers are resolved last-write-wins, mirroring the
// request/response model the storefront uses.
type Store interface {
	// Load returns the cart for a session. A session without a cart
	// yields an empty cart, not an error.
	Load(ctx context.Context, sessionID string) (*model.Cart, error)

	// Save replaces the stored cart for a session wholesale.
	Save(ctx context.Context, sessionID string, cart *model.Cart) error

	// Clear deletes the stored cart for a session.
	Clear(ctx context.Context, sessionID string) error
}
