package service

import (
	"context"
	"fmt"

	"onsen-store/internal/cartstore"
	"onsen-store/internal/metrics"
	"onsen-store/internal/model"
	"onsen-store/internal/pricing"
	"onsen-store/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements the CartService interface. The cart in the
// store is authoritative: unit prices are captured from the product
// table at mutation time and totals are derived server-side.
type cartService struct {
	store    cartstore.Store
	products repository.ProductRepository
	policy   pricing.Policy
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(store cartstore.Store, products repository.ProductRepository, policy pricing.Policy, logger zerolog.Logger) CartService {
	return &cartService{
		store:    store,
		products: products,
		policy:   policy,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) respond(cart *model.Cart) *model.CartResponse {
	return model.NewCartResponse(cart, cart.Summarize(s.policy.Shipping))
}

// Get returns the current cart for a session.
func (s *cartService) Get(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.respond(cart), nil
}

// Add adds a quantity of a product to the cart. The product must exist
// in the catalog; its current price and display data are captured into
// the cart line.
func (s *cartService) Add(ctx context.Context, sessionID string, productID int64, quantity int) (*model.CartResponse, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Add(model.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Origin:    product.Origin,
		ImageURL:  product.ImageURL,
		Quantity:  quantity,
		UnitPrice: product.Price,
	})

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}

	metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	s.logger.Debug().
		Str("session_id", sessionID).
		Int64("product_id", productID).
		Int("quantity", quantity).
		Msg("product added to cart")

	return s.respond(cart), nil
}

// Update sets the quantity of a cart line. Zero or less removes the
// line; a product that is not in the cart is left alone.
func (s *cartService) Update(ctx context.Context, sessionID string, productID int64, quantity int) (*model.CartResponse, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.SetQuantity(productID, quantity)

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}

	metrics.CartMutationsTotal.WithLabelValues("update").Inc()
	return s.respond(cart), nil
}

// Remove deletes a cart line.
func (s *cartService) Remove(ctx context.Context, sessionID string, productID int64) (*model.CartResponse, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Remove(productID)

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}

	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	return s.respond(cart), nil
}

// Clear removes all cart lines.
func (s *cartService) Clear(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Clear()

	if err := s.store.Clear(ctx, sessionID); err != nil {
		return nil, err
	}

	metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	return s.respond(cart), nil
}
