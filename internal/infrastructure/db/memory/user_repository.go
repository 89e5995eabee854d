package memory

import (
	"context"
	"sync"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
)

type UserRepository struct {
	mu         sync.RWMutex
	users      []*domain.User
	byID       map[int]*domain.User
	byUsername map[string]*domain.User // case-sensitive, matching registration
	nextID     int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[int]*domain.User),
		byUsername: make(map[string]*domain.User),
		nextID:     1,
	}
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[u.Username]; taken {
		return nil, domain.ErrUserExists
	}

	stored := *u
	stored.ID = r.nextID
	r.nextID++
	r.users = append(r.users, &stored)
	r.byID[stored.ID] = &stored
	r.byUsername[stored.Username] = &stored

	clone := stored
	return &clone, nil
}

func (r *UserRepository) FindByID(_ context.Context, id int) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *stored
	return &clone, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *stored
	return &clone, nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, stored := range r.users {
		clone := *stored
		out = append(out, &clone)
	}
	return out, nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id int, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	stored.Role = role
	clone := *stored
	return &clone, nil
}
