package repository

import (
	"context"
	"sync"

	userserrors "astro/internal/users/errors"
	"astro/pkg/model"
)

type memoryUserRepository struct {
	mu         sync.RWMutex
	users      map[int64]*model.User
	byUsername map[string]int64
	nextID     int64
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users:      make(map[int64]*model.User),
		byUsername: make(map[string]int64),
		nextID:     1,
	}
}

func (r *memoryUserRepository) GetUser(_ context.Context, id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, userserrors.ErrNotFound
	}
	c := *user
	return &c, nil
}

func (r *memoryUserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	id, ok := r.byUsername[username]
	r.mu.RUnlock()
	if !ok {
		return nil, userserrors.ErrNotFound
	}
	return r.GetUser(ctx, id)
}

func (r *memoryUserRepository) CreateUser(_ context.Context, input *model.UserInput) (*model.User, error) {
	if input == nil {
		return nil, userserrors.ErrNilInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[input.Username]; taken {
		return nil, userserrors.ErrUsernameTaken
	}

	user := &model.User{
		ID:       r.nextID,
		Username: input.Username,
		Password: input.Password,
	}
	r.nextID++
	r.users[user.ID] = user
	r.byUsername[user.Username] = user.ID

	c := *user
	return &c, nil
}
