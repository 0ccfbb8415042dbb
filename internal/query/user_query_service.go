package query

import (
	"context"

	"github.com/eaglebank/mts/internal/repository"
	"github.com/eaglebank/mts/shared/cqrs"
	"github.com/eaglebank/mts/shared/models"
)

// UserQueryService reads users from the Redis read model (with a SQL fallback).
type UserQueryService struct {
	readRepo *repository.UserReadRepository
}

func NewUserQueryService(readRepo *repository.UserReadRepository) *UserQueryService {
	return &UserQueryService{readRepo: readRepo}
}

func (s *UserQueryService) GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.User, error) {
	return s.readRepo.GetByID(ctx, q.UserID)
}

func (s *UserQueryService) ListUsers(ctx context.Context, _ cqrs.ListUsersQuery) ([]models.User, error) {
	return s.readRepo.List(ctx)
}

func (s *UserQueryService) FindUserByEmail(ctx context.Context, q cqrs.FindUserByEmailQuery) (*models.User, error) {
	return s.readRepo.GetByEmail(ctx, q.EmailAddress)
}
