package ports

import (
	"context"
	"time"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
)

// AuthService implements registration, login and logout.
type AuthService interface {
	// Register creates an account with the default Cuisinier role, or
	// directly in a pending role when requestedRole is "chef" or "trad".
	// Returns a signed token alongside the created user.
	Register(ctx context.Context, username, password, requestedRole string) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout revokes the token id until expiresAt.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}
