package repository

import (
	"context"

	"onsen-store/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all active products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single active product by its ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetBySlug retrieves a single active product by its slug.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// GetFeatured retrieves active featured products.
	GetFeatured(ctx context.Context, limit int) ([]model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction
	// and fills in the server-assigned ID.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetByEmail retrieves all orders for a customer email, newest first.
	GetByEmail(ctx context.Context, email string) ([]model.Order, error)

	// GetAll retrieves all orders, newest first.
	GetAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatus updates an order's status and optional tracking number.
	// It reports whether the order existed.
	UpdateStatus(ctx context.Context, id int64, status string, trackingNumber *string) (bool, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]model.User, error)
}
