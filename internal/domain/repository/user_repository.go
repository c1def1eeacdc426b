package repository

import (
	"context"

	"github.com/listora/listings-api/internal/domain/entity"
)

// UserRepository defines user-related database operations.
type UserRepository interface {
	// Create persists a new user and fills in ID and CreatedAt.
	// Returns ErrEmailTaken on a unique-constraint violation.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
