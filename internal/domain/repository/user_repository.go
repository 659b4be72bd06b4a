package repository

import (
	"context"
	"errors"

	"github.com/AintAsh/Churn-Prediction/internal/domain/entity"
)

// ErrUsernameTaken is returned by CreateIfAbsent when the username
// already exists in the directory.
var ErrUsernameTaken = errors.New("username already taken")

// UserRepository defines the interface for the user directory
type UserRepository interface {
	// GetByUsername retrieves a user by username, nil if not found
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// CreateIfAbsent atomically inserts the user unless the username is
	// already present, in which case it returns ErrUsernameTaken
	CreateIfAbsent(ctx context.Context, user *entity.User) error
}
