package repository

import (
	"context"

	"github.com/polkiloo/profilecard/internal/domain/model"
)

// UserRepository describes persistence operations for user accounts.
// Implementations must enforce email uniqueness atomically and report
// violations as errors.ErrAlreadyExists.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
