package ports

import (
	"context"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
)

// RecipeRepository defines persistence operations for recipes. The store owns
// id assignment: ids are monotonic and never reused, even after Delete.
// Comments, photos and likes go through dedicated append/increment operations
// so their invariants cannot be bypassed by a field update.
type RecipeRepository interface {
	// Create assigns the next id and stores the recipe.
	Create(ctx context.Context, r *domain.Recipe) (*domain.Recipe, error)
	FindByID(ctx context.Context, id int) (*domain.Recipe, error)
	// List returns recipes matching filter, preserving insertion order.
	List(ctx context.Context, filter domain.RecipeFilter) ([]*domain.Recipe, error)
	// Update replaces the stored record with the same id.
	Update(ctx context.Context, r *domain.Recipe) (*domain.Recipe, error)
	Delete(ctx context.Context, id int) error
	AddComment(ctx context.Context, id int, c domain.Comment) error
	AddPhoto(ctx context.Context, id int, ref string) error
	// IncrementLikes adds one like and returns the new count.
	IncrementLikes(ctx context.Context, id int) (int, error)
}
