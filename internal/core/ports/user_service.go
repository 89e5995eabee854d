package ports

import (
	"context"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
)

// UserService defines account administration and self-service role requests.
type UserService interface {
	// List returns all users. Administrators only.
	List(ctx context.Context, actor *domain.User) ([]*domain.User, error)
	// SetRole overwrites a user's role. Administrators only; this is also
	// how pending elevation requests get approved.
	SetRole(ctx context.Context, actor *domain.User, id int, role string) (*domain.User, error)
	// RequestElevation moves the acting user from Cuisinier into a pending
	// role ("chef" → DemandeChef, "trad" → DemandeTraducteur).
	RequestElevation(ctx context.Context, actor *domain.User, requested string) (*domain.User, error)
}
