package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
	"github.com/openkitchen/recipe-catalog/internal/core/ports"
)

// RecipeService implements the recipe use-cases. The authorization policy is
// evaluated up front in each operation, first failing rule wins, so no
// partial writes are possible.
type RecipeService struct {
	repo ports.RecipeRepository
	log  zerolog.Logger
}

func NewRecipeService(repo ports.RecipeRepository, log zerolog.Logger) *RecipeService {
	return &RecipeService{repo: repo, log: log}
}

// List returns the filtered recipe collection in insertion order. Open to
// anonymous callers.
func (s *RecipeService) List(ctx context.Context, filter domain.RecipeFilter) ([]*domain.Recipe, error) {
	return s.repo.List(ctx, filter)
}

// Get returns a recipe with its derived total time. Open to anonymous callers.
func (s *RecipeService) Get(ctx context.Context, id int) (*ports.RecipeDetail, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.RecipeDetail{Recipe: recipe, TotalTime: recipe.TotalTime()}, nil
}

// Create stores a new recipe authored by the acting user. Chef or
// Administrateur only. Status, likes, comments and photos are defaulted
// regardless of input.
func (s *RecipeService) Create(ctx context.Context, in ports.CreateRecipeInput) (*domain.Recipe, error) {
	if in.Actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if !in.Actor.Role.CanCreateRecipes() {
		return nil, domain.ErrForbidden
	}

	recipe := &domain.Recipe{
		Name:          in.Name,
		NameFR:        in.NameFR,
		Steps:         in.Steps,
		StepsFR:       in.StepsFR,
		Ingredients:   in.Ingredients,
		IngredientsFR: in.IngredientsFR,
		Timers:        in.Timers,
		Without:       in.Without,
		Author:        in.Actor.Username,
		Status:        domain.StatusInProgress,
		Comments:      []domain.Comment{},
		Photos:        []string{},
		Likes:         0,
	}

	created, err := s.repo.Create(ctx, recipe)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create recipe")
		return nil, err
	}

	s.log.Info().Int("id", created.ID).Str("author", created.Author).Msg("recipe created")
	return created, nil
}

// Update applies a partial content update. Administrators may edit any
// recipe, everyone else only their own.
func (s *RecipeService) Update(ctx context.Context, in ports.UpdateRecipeInput) (*domain.Recipe, error) {
	if in.Actor == nil {
		return nil, domain.ErrUnauthorized
	}

	recipe, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !in.Actor.CanEditRecipe(recipe) {
		return nil, domain.ErrForbidden
	}

	applyContentUpdate(recipe, in)

	updated, err := s.repo.Update(ctx, recipe)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("id", updated.ID).Str("editor", in.Actor.Username).Msg("recipe updated")
	return updated, nil
}

func applyContentUpdate(r *domain.Recipe, in ports.UpdateRecipeInput) {
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.NameFR != nil {
		r.NameFR = *in.NameFR
	}
	if in.Steps != nil {
		r.Steps = *in.Steps
	}
	if in.StepsFR != nil {
		r.StepsFR = *in.StepsFR
	}
	if in.Ingredients != nil {
		r.Ingredients = *in.Ingredients
	}
	if in.IngredientsFR != nil {
		r.IngredientsFR = *in.IngredientsFR
	}
	if in.Timers != nil {
		r.Timers = *in.Timers
	}
	if in.Without != nil {
		r.Without = *in.Without
	}
}

// Delete removes a recipe. Administrateur only; the id is never reused.
func (s *RecipeService) Delete(ctx context.Context, actor *domain.User, id int) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if !actor.Role.CanModerate() {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int("id", id).Str("admin", actor.Username).Msg("recipe deleted")
	return nil
}

// SetStatus declares a recipe "terminée" or "publiée" and reports the
// missing-field count. Administrateur only; any other status value is
// rejected before mutation.
func (s *RecipeService) SetStatus(ctx context.Context, in ports.SetStatusInput) (*ports.SetStatusResult, error) {
	if in.Actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if !in.Actor.Role.CanModerate() {
		return nil, domain.ErrForbidden
	}

	recipe, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	status := domain.Status(in.Status)
	if !status.AdminSettable() {
		return nil, domain.ErrInvalidStatus
	}

	recipe.Status = status
	updated, err := s.repo.Update(ctx, recipe)
	if err != nil {
		return nil, err
	}

	nullCount := updated.MissingFieldCount()
	s.log.Info().Int("id", updated.ID).Str("status", in.Status).Int("null_count", nullCount).Msg("recipe status set")
	return &ports.SetStatusResult{Recipe: updated, NullCount: nullCount}, nil
}

// AddComment appends a comment. Any authenticated principal.
func (s *RecipeService) AddComment(ctx context.Context, actor *domain.User, id int, text string) (*domain.Comment, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	comment := domain.Comment{
		User: actor.Username,
		Text: text,
		Date: time.Now().UTC(),
	}
	if err := s.repo.AddComment(ctx, id, comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// AddPhoto appends a stored photo reference. Any authenticated principal.
func (s *RecipeService) AddPhoto(ctx context.Context, actor *domain.User, id int, ref string) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.AddPhoto(ctx, id, ref)
}

// Like increments the like counter and returns the new count. Any
// authenticated principal; likes never decrease.
func (s *RecipeService) Like(ctx context.Context, actor *domain.User, id int) (int, error) {
	if actor == nil {
		return 0, domain.ErrUnauthorized
	}
	return s.repo.IncrementLikes(ctx, id)
}

// Translate merges incoming French fields. Traducteur, Chef or
// Administrateur only. Fields that fail a merge precondition are dropped
// silently; the report says what happened to each.
func (s *RecipeService) Translate(ctx context.Context, in ports.TranslateInput) (*ports.TranslateResult, error) {
	if in.Actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if !in.Actor.Role.CanTranslate() {
		return nil, domain.ErrForbidden
	}

	recipe, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	report := recipe.ApplyTranslation(in.Patch)
	if report.Changed() {
		if recipe, err = s.repo.Update(ctx, recipe); err != nil {
			return nil, err
		}
	}

	s.log.Info().
		Int("id", recipe.ID).
		Str("translator", in.Actor.Username).
		Str("name_fr", string(report.NameFR)).
		Str("steps_fr", string(report.StepsFR)).
		Str("ingredients_fr", string(report.IngredientsFR)).
		Msg("translation merged")
	return &ports.TranslateResult{Recipe: recipe, Report: report}, nil
}
