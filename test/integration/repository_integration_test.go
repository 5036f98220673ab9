package integration

import (
	"context"
	"testing"
	"time"

	"onsen-store/internal/model"
	"onsen-store/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ids := SeedProducts(t, db.Pool)

	repo := repository.NewProductRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	t.Run("GetAll returns only active products", func(t *testing.T) {
		products, err := repo.GetAll(ctx, 50, 0)
		require.NoError(t, err)
		assert.Len(t, products, 4)
		for _, p := range products {
			assert.True(t, p.IsActive)
			assert.NotEqual(t, "discontinued-blend", p.Slug)
		}
	})

	t.Run("GetAll respects pagination", func(t *testing.T) {
		page1, err := repo.GetAll(ctx, 2, 0)
		require.NoError(t, err)
		page2, err := repo.GetAll(ctx, 2, 2)
		require.NoError(t, err)

		assert.Len(t, page1, 2)
		assert.Len(t, page2, 2)
		assert.NotEqual(t, page1[0].ID, page2[0].ID)
	})

	t.Run("GetByID", func(t *testing.T) {
		product, err := repo.GetByID(ctx, ids["colombia-huila"])
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "Colombia Huila", product.Name)
		assert.Equal(t, 10.00, product.Price)
		assert.Equal(t, model.RoastMedium, product.Roast)
	})

	t.Run("GetByID ignores inactive products", func(t *testing.T) {
		product, err := repo.GetByID(ctx, ids["discontinued-blend"])
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		product, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("GetBySlug", func(t *testing.T) {
		product, err := repo.GetBySlug(ctx, "kenya-aa")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, ids["kenya-aa"], product.ID)
	})

	t.Run("GetFeatured", func(t *testing.T) {
		products, err := repo.GetFeatured(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, products, 2)
		for _, p := range products {
			assert.True(t, p.Featured)
		}
	})

	t.Run("GetByIDs", func(t *testing.T) {
		products, err := repo.GetByIDs(ctx, []int64{ids["kenya-aa"], ids["colombia-huila"]})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("GetByIDs with empty input", func(t *testing.T) {
		products, err := repo.GetByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ids := SeedProducts(t, db.Pool)

	repo := repository.NewOrderRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	newOrder := func(email string) *model.Order {
		now := time.Now().UTC()
		return &model.Order{
			Status:             model.OrderStatusPending,
			Subtotal:           25.00,
			ShippingCost:       4.99,
			Total:              29.99,
			CustomerName:       "Ana García",
			CustomerEmail:      email,
			ShippingAddress:    "Calle Mayor 12, 3B",
			ShippingCity:       "Madrid",
			ShippingPostalCode: "28001",
			ShippingCountry:    "España",
			PaymentMethod:      model.PaymentMethodCard,
			PaymentStatus:      model.PaymentStatusPending,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
	}

	t.Run("create order with items and read it back", func(t *testing.T) {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		order := newOrder("ana@example.com")
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		assert.NotZero(t, order.ID)

		items := []model.OrderItem{
			{OrderID: order.ID, ProductID: ids["ethiopia-yirgacheffe"], Quantity: 2, UnitPrice: 12.50},
			{OrderID: order.ID, ProductID: ids["colombia-huila"], Quantity: 1, UnitPrice: 10.00},
		}
		require.NoError(t, repo.CreateOrderItems(ctx, tx, items))
		require.NoError(t, tx.Commit(ctx))

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 29.99, got.Total)
		assert.Equal(t, model.OrderStatusPending, got.Status)
		require.Len(t, got.Items, 2)

		// Items carry display data joined from the product table
		assert.Equal(t, "Ethiopia Yirgacheffe", got.Items[0].Name)
		assert.Equal(t, "Etiopía", got.Items[0].Origin)
	})

	t.Run("rollback leaves no order behind", func(t *testing.T) {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		order := newOrder("rollback@example.com")
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		require.NoError(t, tx.Rollback(ctx))

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		orders, err := repo.GetByEmail(ctx, "rollback@example.com")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("GetByEmail newest first", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			tx, err := repo.BeginTx(ctx)
			require.NoError(t, err)
			order := newOrder("history@example.com")
			order.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
			require.NoError(t, repo.CreateOrder(ctx, tx, order))
			require.NoError(t, tx.Commit(ctx))
		}

		orders, err := repo.GetByEmail(ctx, "history@example.com")
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt))
	})

	t.Run("GetAll includes every order", func(t *testing.T) {
		orders, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(orders), 3)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		order := newOrder("status@example.com")
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		require.NoError(t, tx.Commit(ctx))

		tracking := "TRK-001"
		found, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusShipped, &tracking)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusShipped, got.Status)
		require.NotNil(t, got.TrackingNumber)
		assert.Equal(t, "TRK-001", *got.TrackingNumber)
	})

	t.Run("UpdateStatus keeps tracking number when nil", func(t *testing.T) {
		orders, err := repo.GetByEmail(ctx, "status@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, orders)

		found, err := repo.UpdateStatus(ctx, orders[0].ID, model.OrderStatusDelivered, nil)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := repo.GetByID(ctx, orders[0].ID)
		require.NoError(t, err)
		require.NotNil(t, got.TrackingNumber)
		assert.Equal(t, "TRK-001", *got.TrackingNumber)
	})

	t.Run("UpdateStatus unknown order", func(t *testing.T) {
		found, err := repo.UpdateStatus(ctx, 999999, model.OrderStatusConfirmed, nil)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)

	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO users (email, first_name, last_name, role) VALUES
			('ana@example.com', 'Ana', 'García', 'customer'),
			('admin@example.com', 'Admin', 'User', 'admin')`)
	require.NoError(t, err)

	repo := repository.NewUserRepository(db.Pool, zerolog.Nop())

	users, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
