package service

import (
	"context"
	"fmt"

	"onsen-store/internal/model"
	"onsen-store/internal/repository"

	"github.com/rs/zerolog"
)

// userService implements the UserService interface.
type userService struct {
	repo   repository.UserRepository
	logger zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

// GetAll retrieves all users.
func (s *userService) GetAll(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}
