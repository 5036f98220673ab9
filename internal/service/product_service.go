package service

import (
	"context"
	"fmt"

	"onsen-store/internal/model"
	"onsen-store/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultProductLimit  = 50
	maxProductLimit      = 100
	defaultFeaturedLimit = 4
)

// productService implements the ProductService interface.
type productService struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// GetProducts retrieves the active catalog with pagination.
func (s *productService) GetProducts(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit < 1 || limit > maxProductLimit {
		limit = defaultProductLimit
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.repo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}

// GetProduct retrieves a single product by ID.
func (s *productService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// GetProductBySlug retrieves a single product by slug.
func (s *productService) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get product by slug: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// GetFeaturedProducts retrieves the featured products.
func (s *productService) GetFeaturedProducts(ctx context.Context, limit int) ([]model.Product, error) {
	if limit < 1 || limit > maxProductLimit {
		limit = defaultFeaturedLimit
	}

	products, err := s.repo.GetFeatured(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}
