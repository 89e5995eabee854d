package handler

import (
	"github.com/openkitchen/recipe-catalog/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// createRecipeRequest carries the content fields of a new recipe. No field
// is individually required: a recipe may start life with only one language
// filled in — the missing-field audit tracks completeness instead.
// Ingredient entries accept either a plain string or a {quantity, name} pair.
type createRecipeRequest struct {
	Name          string              `json:"name"`
	NameFR        string              `json:"nameFR"`
	Steps         []string            `json:"steps"`
	StepsFR       []string            `json:"stepsFR"`
	Ingredients   []domain.Ingredient `json:"ingredients"`
	IngredientsFR []domain.Ingredient `json:"ingredientsFR"`
	Timers        []float64           `json:"timers"`
	Without       []string            `json:"Without"`
}

// updateRecipeRequest is a partial update: absent fields stay untouched.
// Author, status, likes, comments and photos are not accepted here.
type updateRecipeRequest struct {
	Name          *string              `json:"name"`
	NameFR        *string              `json:"nameFR"`
	Steps         *[]string            `json:"steps"`
	StepsFR       *[]string            `json:"stepsFR"`
	Ingredients   *[]domain.Ingredient `json:"ingredients"`
	IngredientsFR *[]domain.Ingredient `json:"ingredientsFR"`
	Timers        *[]float64           `json:"timers"`
	Without       *[]string            `json:"Without"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

// photoRequest covers the URL variant of the photo endpoint; the multipart
// upload variant is read straight from the form.
type photoRequest struct {
	PhotoURL string `json:"photoURL" form:"photoURL"`
}

type translateRequest struct {
	NameFR        string              `json:"nameFR"`
	StepsFR       []string            `json:"stepsFR"`
	IngredientsFR []domain.Ingredient `json:"ingredientsFR"`
}

// --- Response types ---

type recipeResponse struct {
	Message string         `json:"message"`
	Recipe  *domain.Recipe `json:"recipe"`
}

type recipeDetailResponse struct {
	Recipe    *domain.Recipe `json:"recipe"`
	TotalTime float64        `json:"totalTime"`
}

type statusResponse struct {
	Message   string         `json:"message"`
	Recipe    *domain.Recipe `json:"recipe"`
	NullCount int            `json:"nullCount"`
}

type commentResponse struct {
	Message string         `json:"message"`
	Comment domain.Comment `json:"comment"`
}

type photoResponse struct {
	Message  string `json:"message"`
	PhotoURL string `json:"photoURL"`
}

type likeResponse struct {
	Message string `json:"message"`
	Likes   int    `json:"likes"`
}

type translateResponse struct {
	Message string                   `json:"message"`
	Recipe  *domain.Recipe           `json:"recipe"`
	Merge   domain.TranslationReport `json:"merge"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}
