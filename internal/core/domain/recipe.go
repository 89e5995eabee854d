package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Status represents the editorial lifecycle state of a recipe.
type Status string

const (
	StatusInProgress Status = "en cours"
	StatusFinished   Status = "terminée"
	StatusPublished  Status = "publiée"
)

var ErrRecipeNotFound = errors.New("recipe not found")
var ErrUnauthorized = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidStatus = errors.New("invalid status value")

// AdminSettable reports whether the status is one an administrator may set
// on an existing recipe. The default "en cours" is assigned at creation only.
func (s Status) AdminSettable() bool {
	return s == StatusFinished || s == StatusPublished
}

// Ingredient is a single entry in a recipe's ingredient list. The wire format
// is a union: either a plain string or a {quantity, name} pair. Text is set
// for the plain form, Quantity/Name for the structured form.
type Ingredient struct {
	Text     string
	Quantity string
	Name     string
}

type ingredientPair struct {
	Quantity string `json:"quantity"`
	Name     string `json:"name"`
}

func (i Ingredient) MarshalJSON() ([]byte, error) {
	if i.Text != "" {
		return json.Marshal(i.Text)
	}
	return json.Marshal(ingredientPair{Quantity: i.Quantity, Name: i.Name})
}

func (i *Ingredient) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(data, &i.Text)
	}
	var p ingredientPair
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	i.Quantity = p.Quantity
	i.Name = p.Name
	i.Text = ""
	return nil
}

// Comment is an append-only annotation left by an authenticated user.
type Comment struct {
	User string    `json:"user" bson:"user"`
	Text string    `json:"text" bson:"text"`
	Date time.Time `json:"date" bson:"date"`
}

// Recipe is the core aggregate root. English and French fields are
// independently nullable; ids are assigned once and never reused.
type Recipe struct {
	ID            int          `json:"id" bson:"_id"`
	Name          string       `json:"name,omitempty" bson:"name,omitempty"`
	NameFR        string       `json:"nameFR,omitempty" bson:"name_fr,omitempty"`
	Steps         []string     `json:"steps,omitempty" bson:"steps,omitempty"`
	StepsFR       []string     `json:"stepsFR,omitempty" bson:"steps_fr,omitempty"`
	Ingredients   []Ingredient `json:"ingredients,omitempty" bson:"ingredients,omitempty"`
	IngredientsFR []Ingredient `json:"ingredientsFR,omitempty" bson:"ingredients_fr,omitempty"`
	Author        string       `json:"author" bson:"author"`
	Status        Status       `json:"status" bson:"status"`
	Comments      []Comment    `json:"comments" bson:"comments"`
	Photos        []string     `json:"photos" bson:"photos"`
	Likes         int          `json:"likes" bson:"likes"`
	Timers        []float64    `json:"timers,omitempty" bson:"timers,omitempty"`
	Without       []string     `json:"Without,omitempty" bson:"without,omitempty"`
}

// TotalTime returns the sum of the recipe's timers, 0 when absent.
// Derived per request, never stored.
func (r *Recipe) TotalTime() float64 {
	var total float64
	for _, t := range r.Timers {
		total += t
	}
	return total
}

// MissingFieldCount returns how many of the six bilingual content fields are
// absent or empty. Range [0,6]; fields are never cleared, so the count only
// ever decreases over a recipe's lifetime.
func (r *Recipe) MissingFieldCount() int {
	count := 0
	if r.Name == "" {
		count++
	}
	if r.NameFR == "" {
		count++
	}
	if len(r.Steps) == 0 {
		count++
	}
	if len(r.StepsFR) == 0 {
		count++
	}
	if len(r.Ingredients) == 0 {
		count++
	}
	if len(r.IngredientsFR) == 0 {
		count++
	}
	return count
}

// Excludes reports whether the recipe carries the given dietary-exclusion tag.
func (r *Recipe) Excludes(tag string) bool {
	for _, w := range r.Without {
		if w == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so stored records never alias caller slices.
func (r *Recipe) Clone() *Recipe {
	clone := *r
	clone.Steps = append([]string(nil), r.Steps...)
	clone.StepsFR = append([]string(nil), r.StepsFR...)
	clone.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	clone.IngredientsFR = append([]Ingredient(nil), r.IngredientsFR...)
	clone.Comments = append([]Comment(nil), r.Comments...)
	clone.Photos = append([]string(nil), r.Photos...)
	clone.Timers = append([]float64(nil), r.Timers...)
	clone.Without = append([]string(nil), r.Without...)
	return &clone
}

// Dietary-exclusion tags recognised by the list filters.
const (
	TagNoGluten = "NoGluten"
	TagVegan    = "Vegan"
)

// RecipeFilter carries the optional list-endpoint filters. Filters compose
// conjunctively; the matched subsequence keeps the collection's order.
type RecipeFilter struct {
	Query      string // case-insensitive substring on name or joined steps
	GlutenFree bool
	Vegan      bool
	Language   string // "fr" requires nameFR, "en" requires name
}

// Matches reports whether the recipe passes every supplied filter.
func (f RecipeFilter) Matches(r *Recipe) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		nameHit := r.Name != "" && strings.Contains(strings.ToLower(r.Name), q)
		stepsHit := len(r.Steps) > 0 && strings.Contains(strings.ToLower(strings.Join(r.Steps, " ")), q)
		if !nameHit && !stepsHit {
			return false
		}
	}
	if f.GlutenFree && !r.Excludes(TagNoGluten) {
		return false
	}
	if f.Vegan && !r.Excludes(TagVegan) {
		return false
	}
	switch f.Language {
	case "fr":
		if r.NameFR == "" {
			return false
		}
	case "en":
		if r.Name == "" {
			return false
		}
	}
	return true
}
