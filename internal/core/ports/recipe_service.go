package ports

import (
	"context"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
)

// CreateRecipeInput carries the content of a new recipe. Actor is the
// principal derived from the request, nil when anonymous. Author, status,
// likes, comments and photos are assigned by the service, never by callers.
type CreateRecipeInput struct {
	Actor         *domain.User
	Name          string
	NameFR        string
	Steps         []string
	StepsFR       []string
	Ingredients   []domain.Ingredient
	IngredientsFR []domain.Ingredient
	Timers        []float64
	Without       []string
}

// UpdateRecipeInput carries a partial content update. Nil fields are left
// untouched. The protected fields (author, status, likes, comments, photos)
// have no counterpart here: each has its own operation or is immutable.
type UpdateRecipeInput struct {
	Actor         *domain.User
	ID            int
	Name          *string
	NameFR        *string
	Steps         *[]string
	StepsFR       *[]string
	Ingredients   *[]domain.Ingredient
	IngredientsFR *[]domain.Ingredient
	Timers        *[]float64
	Without       *[]string
}

// SetStatusInput carries an admin status change. Status is the raw request
// value; the service accepts exactly "terminée" or "publiée".
type SetStatusInput struct {
	Actor  *domain.User
	ID     int
	Status string
}

// SetStatusResult pairs the updated recipe with its missing-field count,
// recomputed on every call as an editorial completeness signal.
type SetStatusResult struct {
	Recipe    *domain.Recipe
	NullCount int
}

// TranslateInput carries a translation merge request.
type TranslateInput struct {
	Actor *domain.User
	ID    int
	Patch domain.TranslationPatch
}

// TranslateResult pairs the merged recipe with the per-field merge report.
type TranslateResult struct {
	Recipe *domain.Recipe
	Report domain.TranslationReport
}

// RecipeDetail is the single-recipe view with its derived total time.
type RecipeDetail struct {
	Recipe    *domain.Recipe
	TotalTime float64
}

// RecipeService defines the recipe use-cases. Every mutating operation
// evaluates the authorization policy before touching the store.
type RecipeService interface {
	List(ctx context.Context, filter domain.RecipeFilter) ([]*domain.Recipe, error)
	Get(ctx context.Context, id int) (*RecipeDetail, error)
	Create(ctx context.Context, in CreateRecipeInput) (*domain.Recipe, error)
	Update(ctx context.Context, in UpdateRecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, actor *domain.User, id int) error
	SetStatus(ctx context.Context, in SetStatusInput) (*SetStatusResult, error)
	AddComment(ctx context.Context, actor *domain.User, id int, text string) (*domain.Comment, error)
	AddPhoto(ctx context.Context, actor *domain.User, id int, ref string) error
	Like(ctx context.Context, actor *domain.User, id int) (int, error)
	Translate(ctx context.Context, in TranslateInput) (*TranslateResult, error)
}
