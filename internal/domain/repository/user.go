package repository

import (
	"context"

	"github.com/polkiloo/authkeeper/internal/domain/model"
)

// UserRepository describes persistence operations for users.
//
// Create must insert atomically and report a duplicate email as
// errors.ErrAlreadyExists based on the store's own uniqueness constraint.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
