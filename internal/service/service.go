package service

import (
	"context"
	"time"

	"onsen-store/internal/auth"
	"onsen-store/internal/model"
)

// ProductService defines the interface for catalog business logic.
type ProductService interface {
	// GetProducts retrieves the active catalog with pagination.
	GetProducts(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetProduct retrieves a single product by ID.
	GetProduct(ctx context.Context, id int64) (*model.Product, error)

	// GetProductBySlug retrieves a single product by slug.
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)

	// GetFeaturedProducts retrieves the featured products.
	GetFeaturedProducts(ctx context.Context, limit int) ([]model.Product, error)
}

// CartService defines the interface for session cart business logic.
// Every operation returns the full authoritative cart state with its
// derived aggregates.
type CartService interface {
	// Get returns the current cart for a session.
	Get(ctx context.Context, sessionID string) (*model.CartResponse, error)

	// Add adds a quantity of a product to the cart, merging into an
	// existing line when present.
	Add(ctx context.Context, sessionID string, productID int64, quantity int) (*model.CartResponse, error)

	// Update sets the quantity of a cart line. Zero or less removes the
	// line; updating a product that is not in the cart is a no-op.
	Update(ctx context.Context, sessionID string, productID int64, quantity int) (*model.CartResponse, error)

	// Remove deletes a cart line.
	Remove(ctx context.Context, sessionID string, productID int64) (*model.CartResponse, error)

	// Clear removes all cart lines.
	Clear(ctx context.Context, sessionID string) (*model.CartResponse, error)
}

// OrderService defines the interface for order business logic.
type OrderService interface {
	// Submit turns the session cart into an order. It requires an
	// authenticated session, a non-empty cart and a valid checkout
	// form, and allows only one in-flight submission per session.
	Submit(ctx context.Context, sessionID string, session *auth.Session, req *model.CheckoutRequest) (*model.OrderConfirmation, error)

	// GetByID retrieves an order. Customers can only read their own
	// orders; admins can read any.
	GetByID(ctx context.Context, session *auth.Session, id int64) (*model.Order, error)

	// GetByEmail retrieves the order history for a customer email.
	// Customers can only read their own history.
	GetByEmail(ctx context.Context, session *auth.Session, email string) ([]model.Order, error)

	// GetAll retrieves all orders. Admin only, enforced at the router.
	GetAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatus updates an order's status and optional tracking
	// number. Admin only, enforced at the router.
	UpdateStatus(ctx context.Context, id int64, status string, trackingNumber *string) error
}

// UserService defines the interface for user business logic.
type UserService interface {
	// GetAll retrieves all users. Admin only, enforced at the router.
	GetAll(ctx context.Context) ([]model.User, error)
}

// Locker provides named locks with a TTL. The checkout flow uses it to
// keep a session to one in-flight submission.
type Locker interface {
	AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, lockKey string) error
}
