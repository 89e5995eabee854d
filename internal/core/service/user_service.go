package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
	"github.com/openkitchen/recipe-catalog/internal/core/ports"
)

// UserService implements account administration and self-service role
// elevation requests.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// List returns all users. Administrateur only.
func (s *UserService) List(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if !actor.Role.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx)
}

// SetRole overwrites a user's role. Administrateur only. Approving a pending
// elevation request is simply setting the target role here.
func (s *UserService) SetRole(ctx context.Context, actor *domain.User, id int, role string) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if !actor.Role.CanManageUsers() {
		return nil, domain.ErrForbidden
	}

	newRole := domain.Role(role)
	if !newRole.Valid() {
		return nil, domain.ErrInvalidRole
	}

	updated, err := s.users.UpdateRole(ctx, id, newRole)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", id).Str("role", role).Str("admin", actor.Username).Msg("user role set")
	return updated, nil
}

// RequestElevation moves the acting user into a pending role. Only users
// whose current role is exactly Cuisinier may request; the overwrite is in
// place, so a repeated request from the pending state is refused.
func (s *UserService) RequestElevation(ctx context.Context, actor *domain.User, requested string) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if actor.Role != domain.RoleCook {
		return nil, domain.ErrForbidden
	}

	pending, err := domain.RoleForRequest(requested)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, actor.ID, pending)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", actor.ID).Str("requested", requested).Msg("role elevation requested")
	return updated, nil
}
