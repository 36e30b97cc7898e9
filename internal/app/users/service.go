package users

import (
	"context"
	"strings"

	"musicstream/internal/models"
)

// Store describes the persistence operations required by the user service.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, name string, age int) (models.User, error)
}

// Service exposes user-related workflows.
type Service interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, name string, age int) (models.User, error)
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListUsers(ctx)
}

func (s *service) Create(ctx context.Context, name string, age int) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, models.Invalid("name", "is required")
	}
	if age <= 0 {
		return models.User{}, models.Invalid("age", "must be positive")
	}
	return s.store.CreateUser(ctx, name, age)
}
