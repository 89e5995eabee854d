package ports

import (
	"context"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Usernames are unique and case-sensitive; user ids are never reused.
type UserRepository interface {
	// Create assigns the next id and stores the user.
	// Returns domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns all users in registration order.
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateRole overwrites the user's role in place.
	UpdateRole(ctx context.Context, id int, role domain.Role) (*domain.User, error)
}
