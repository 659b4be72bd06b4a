package memory

import (
	"context"
	"sync"

	"github.com/AintAsh/Churn-Prediction/internal/domain/entity"
	"github.com/AintAsh/Churn-Prediction/internal/domain/repository"
)

// userRepository is an in-process user directory. It is the default
// store when no database is configured and the store used in tests.
type userRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository() repository.UserRepository {
	return &userRepository{users: make(map[string]*entity.User)}
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *userRepository) CreateIfAbsent(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return repository.ErrUsernameTaken
	}
	copied := *user
	r.users[user.Username] = &copied
	return nil
}
