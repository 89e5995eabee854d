// Package memory provides the default in-process store drivers. The
// collections live in insertion-ordered slices guarded by an RWMutex, since
// the HTTP layer serves requests concurrently. Id counters only ever
// increment, so an id is never reused even after a delete.
package memory

import (
	"context"
	"sync"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
)

type RecipeRepository struct {
	mu      sync.RWMutex
	recipes []*domain.Recipe
	byID    map[int]*domain.Recipe
	nextID  int
}

func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{
		byID:   make(map[int]*domain.Recipe),
		nextID: 1,
	}
}

// Seed loads the boot-time recipe collection, assigning sequential ids in
// file order. Intended to be called once before the server starts.
func (r *RecipeRepository) Seed(recipes []*domain.Recipe) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, recipe := range recipes {
		stored := recipe.Clone()
		stored.ID = r.nextID
		r.nextID++
		if stored.Status == "" {
			stored.Status = domain.StatusInProgress
		}
		r.recipes = append(r.recipes, stored)
		r.byID[stored.ID] = stored
	}
}

func (r *RecipeRepository) Create(_ context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := recipe.Clone()
	stored.ID = r.nextID
	r.nextID++
	r.recipes = append(r.recipes, stored)
	r.byID[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *RecipeRepository) FindByID(_ context.Context, id int) (*domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return stored.Clone(), nil
}

func (r *RecipeRepository) List(_ context.Context, filter domain.RecipeFilter) ([]*domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Recipe, 0, len(r.recipes))
	for _, stored := range r.recipes {
		if filter.Matches(stored) {
			matched = append(matched, stored.Clone())
		}
	}
	return matched, nil
}

func (r *RecipeRepository) Update(_ context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[recipe.ID]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}

	replacement := recipe.Clone()
	*stored = *replacement
	return stored.Clone(), nil
}

// Delete removes the recipe. The id counter is untouched: deleted ids stay
// burned forever.
func (r *RecipeRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrRecipeNotFound
	}
	delete(r.byID, id)
	for i, stored := range r.recipes {
		if stored.ID == id {
			r.recipes = append(r.recipes[:i], r.recipes[i+1:]...)
			break
		}
	}
	return nil
}

func (r *RecipeRepository) AddComment(_ context.Context, id int, c domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return domain.ErrRecipeNotFound
	}
	stored.Comments = append(stored.Comments, c)
	return nil
}

func (r *RecipeRepository) AddPhoto(_ context.Context, id int, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return domain.ErrRecipeNotFound
	}
	stored.Photos = append(stored.Photos, ref)
	return nil
}

func (r *RecipeRepository) IncrementLikes(_ context.Context, id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return 0, domain.ErrRecipeNotFound
	}
	stored.Likes++
	return stored.Likes, nil
}
