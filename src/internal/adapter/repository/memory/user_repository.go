package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.Username] = user
	return user, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) Deactivate(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for username, user := range r.users {
		if user.ID == userID {
			user.Active = false
			user.UpdatedAt = time.Now().UTC()
			r.users[username] = user
			return nil
		}
	}
	return domain.ErrUserNotFound
}
