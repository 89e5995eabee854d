package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
	"github.com/openkitchen/recipe-catalog/internal/core/ports"
)

type stubRecipeRepo struct {
	recipes map[int]*domain.Recipe
	nextID  int
}

func newStubRecipeRepo() *stubRecipeRepo {
	return &stubRecipeRepo{recipes: make(map[int]*domain.Recipe), nextID: 1}
}

func (r *stubRecipeRepo) Create(_ context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	stored := recipe.Clone()
	stored.ID = r.nextID
	r.nextID++
	r.recipes[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *stubRecipeRepo) FindByID(_ context.Context, id int) (*domain.Recipe, error) {
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe.Clone(), nil
}

func (r *stubRecipeRepo) List(_ context.Context, filter domain.RecipeFilter) ([]*domain.Recipe, error) {
	out := make([]*domain.Recipe, 0)
	for id := 1; id < r.nextID; id++ {
		if recipe, ok := r.recipes[id]; ok && filter.Matches(recipe) {
			out = append(out, recipe.Clone())
		}
	}
	return out, nil
}

func (r *stubRecipeRepo) Update(_ context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	if _, ok := r.recipes[recipe.ID]; !ok {
		return nil, domain.ErrRecipeNotFound
	}
	r.recipes[recipe.ID] = recipe.Clone()
	return recipe.Clone(), nil
}

func (r *stubRecipeRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.recipes[id]; !ok {
		return domain.ErrRecipeNotFound
	}
	delete(r.recipes, id)
	return nil
}

func (r *stubRecipeRepo) AddComment(_ context.Context, id int, c domain.Comment) error {
	recipe, ok := r.recipes[id]
	if !ok {
		return domain.ErrRecipeNotFound
	}
	recipe.Comments = append(recipe.Comments, c)
	return nil
}

func (r *stubRecipeRepo) AddPhoto(_ context.Context, id int, ref string) error {
	recipe, ok := r.recipes[id]
	if !ok {
		return domain.ErrRecipeNotFound
	}
	recipe.Photos = append(recipe.Photos, ref)
	return nil
}

func (r *stubRecipeRepo) IncrementLikes(_ context.Context, id int) (int, error) {
	recipe, ok := r.recipes[id]
	if !ok {
		return 0, domain.ErrRecipeNotFound
	}
	recipe.Likes++
	return recipe.Likes, nil
}

var (
	adminUser = &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}
	chefUser  = &domain.User{ID: 2, Username: "chef1", Role: domain.RoleChef}
	chefTwo   = &domain.User{ID: 3, Username: "chef2", Role: domain.RoleChef}
	cookUser  = &domain.User{ID: 4, Username: "cuisinier1", Role: domain.RoleCook}
	tradUser  = &domain.User{ID: 5, Username: "trad1", Role: domain.RoleTranslator}
)

func newTestRecipeService() (*RecipeService, *stubRecipeRepo) {
	repo := newStubRecipeRepo()
	return NewRecipeService(repo, zerolog.Nop()), repo
}

func mustCreate(t *testing.T, svc *RecipeService, actor *domain.User, name string) *domain.Recipe {
	t.Helper()
	created, err := svc.Create(context.Background(), ports.CreateRecipeInput{
		Actor:       actor,
		Name:        name,
		Steps:       []string{"step one"},
		Ingredients: []domain.Ingredient{{Text: "flour"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return created
}

func TestRecipeService_Create_Defaults(t *testing.T) {
	svc, _ := newTestRecipeService()

	created := mustCreate(t, svc, chefUser, "Crepes")
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}
	if created.Author != "chef1" {
		t.Fatalf("author not taken from actor: %q", created.Author)
	}
	if created.Status != domain.StatusInProgress {
		t.Fatalf("expected status %q, got %q", domain.StatusInProgress, created.Status)
	}
	if created.Likes != 0 || len(created.Comments) != 0 || len(created.Photos) != 0 {
		t.Fatalf("social fields not defaulted: %+v", created)
	}
}

func TestRecipeService_Create_Policy(t *testing.T) {
	svc, _ := newTestRecipeService()

	if _, err := svc.Create(context.Background(), ports.CreateRecipeInput{Name: "x"}); err != domain.ErrUnauthorized {
		t.Fatalf("anonymous create: expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateRecipeInput{Actor: cookUser, Name: "x"}); err != domain.ErrForbidden {
		t.Fatalf("cook create: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateRecipeInput{Actor: tradUser, Name: "x"}); err != domain.ErrForbidden {
		t.Fatalf("translator create: expected ErrForbidden, got %v", err)
	}
}

func TestRecipeService_Update_OwnershipPolicy(t *testing.T) {
	svc, _ := newTestRecipeService()
	created := mustCreate(t, svc, chefUser, "Crepes")

	newName := "Crepes fines"
	if _, err := svc.Update(context.Background(), ports.UpdateRecipeInput{Actor: chefTwo, ID: created.ID, Name: &newName}); err != domain.ErrForbidden {
		t.Fatalf("non-author chef: expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(context.Background(), ports.UpdateRecipeInput{Actor: chefUser, ID: created.ID, Name: &newName})
	if err != nil {
		t.Fatalf("author update failed: %v", err)
	}
	if updated.Name != "Crepes fines" {
		t.Fatalf("name not updated: %q", updated.Name)
	}

	adminName := "Crepes royales"
	if _, err := svc.Update(context.Background(), ports.UpdateRecipeInput{Actor: adminUser, ID: created.ID, Name: &adminName}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestRecipeService_Update_NotFoundBeforeForbidden(t *testing.T) {
	svc, _ := newTestRecipeService()

	name := "x"
	if _, err := svc.Update(context.Background(), ports.UpdateRecipeInput{Actor: chefUser, ID: 99, Name: &name}); err != domain.ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestRecipeService_Update_Partial(t *testing.T) {
	svc, _ := newTestRecipeService()
	created := mustCreate(t, svc, chefUser, "Crepes")

	timers := []float64{5, 20}
	updated, err := svc.Update(context.Background(), ports.UpdateRecipeInput{Actor: chefUser, ID: created.ID, Timers: &timers})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Crepes" {
		t.Fatalf("untouched field changed: %q", updated.Name)
	}
	if len(updated.Timers) != 2 {
		t.Fatalf("timers not applied: %v", updated.Timers)
	}
}

func TestRecipeService_Delete_AdminOnly(t *testing.T) {
	svc, repo := newTestRecipeService()
	created := mustCreate(t, svc, chefUser, "Crepes")

	if err := svc.Delete(context.Background(), chefUser, created.ID); err != domain.ErrForbidden {
		t.Fatalf("chef delete: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), nil, created.ID); err != domain.ErrUnauthorized {
		t.Fatalf("anonymous delete: expected ErrUnauthorized, got %v", err)
	}

	if err := svc.Delete(context.Background(), adminUser, created.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if _, ok := repo.recipes[created.ID]; ok {
		t.Fatalf("recipe still stored after delete")
	}
	if err := svc.Delete(context.Background(), adminUser, created.ID); err != domain.ErrRecipeNotFound {
		t.Fatalf("double delete: expected ErrRecipeNotFound, got %v", err)
	}
}

func TestRecipeService_SetStatus(t *testing.T) {
	svc, _ := newTestRecipeService()
	created := mustCreate(t, svc, chefUser, "Crepes")

	if _, err := svc.SetStatus(context.Background(), ports.SetStatusInput{Actor: chefUser, ID: created.ID, Status: "terminée"}); err != domain.ErrForbidden {
		t.Fatalf("chef set status: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), ports.SetStatusInput{Actor: adminUser, ID: created.ID, Status: "en cours"}); err != domain.ErrInvalidStatus {
		t.Fatalf("reverting to en cours: expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), ports.SetStatusInput{Actor: adminUser, ID: created.ID, Status: "archived"}); err != domain.ErrInvalidStatus {
		t.Fatalf("unknown status: expected ErrInvalidStatus, got %v", err)
	}

	result, err := svc.SetStatus(context.Background(), ports.SetStatusInput{Actor: adminUser, ID: created.ID, Status: "terminée"})
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if result.Recipe.Status != domain.StatusFinished {
		t.Fatalf("status not applied: %q", result.Recipe.Status)
	}
	// name, steps, ingredients are filled; the three French fields are not.
	if result.NullCount != 3 {
		t.Fatalf("expected nullCount 3, got %d", result.NullCount)
	}
}

func TestRecipeService_AddComment(t *testing.T) {
	svc, repo := newTestRecipeService()
	created := mustCreate(t, svc, chefUser, "Crepes")

	if _, err := svc.AddComment(context.Background(), nil, created.ID, "hello"); err != domain.ErrUnauthorized {
		t.Fatalf("anonymous comment: expected ErrUnauthorized, got %v", err)
	}

	comment, err := svc.AddComment(context.Background(), cookUser, created.ID, "Délicieux")
	if err != nil {
		t.Fatalf("comment failed: %v", err)
	}
	if comment.User != "cuisinier1" || comment.Text != "Délicieux" {
		t.Fatalf("unexpected comment: %+v", comment)
	}
	if comment.Date.IsZero() {
		t.Fatalf("comment date not set")
	}
	if len(repo.recipes[created.ID].Comments) != 1 {
		t.Fatalf("comment not stored")
	}

	if _, err := svc.AddComment(context.Background(), cookUser, 99, "x"); err != domain.ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestRecipeService_Like_Counts(t *testing.T) {
	svc, _ := newTestRecipeService()
	created := mustCreate(t, svc, chefUser, "Crepes")

	if _, err := svc.Like(context.Background(), nil, created.ID); err != domain.ErrUnauthorized {
		t.Fatalf("anonymous like: expected ErrUnauthorized, got %v", err)
	}

	for i := 1; i <= 3; i++ {
		likes, err := svc.Like(context.Background(), cookUser, created.ID)
		if err != nil {
			t.Fatalf("like %d failed: %v", i, err)
		}
		if likes != i {
			t.Fatalf("expected %d likes, got %d", i, likes)
		}
	}
}

func TestRecipeService_Translate_Policy(t *testing.T) {
	svc, _ := newTestRecipeService()
	created := mustCreate(t, svc, chefUser, "Crepes")

	if _, err := svc.Translate(context.Background(), ports.TranslateInput{Actor: cookUser, ID: created.ID}); err != domain.ErrForbidden {
		t.Fatalf("cook translate: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Translate(context.Background(), ports.TranslateInput{ID: created.ID}); err != domain.ErrUnauthorized {
		t.Fatalf("anonymous translate: expected ErrUnauthorized, got %v", err)
	}
}

func TestRecipeService_Translate_MergeAndReport(t *testing.T) {
	svc, repo := newTestRecipeService()
	created := mustCreate(t, svc, chefUser, "Crepes")

	result, err := svc.Translate(context.Background(), ports.TranslateInput{
		Actor: tradUser,
		ID:    created.ID,
		Patch: domain.TranslationPatch{
			NameFR:        "Crêpes",
			IngredientsFR: []domain.Ingredient{{Text: "farine"}, {Text: "sel"}},
		},
	})
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	if result.Report.NameFR != domain.OutcomeMerged {
		t.Fatalf("expected nameFR merged, got %s", result.Report.NameFR)
	}
	// one English ingredient, two French entries supplied
	if result.Report.IngredientsFR != domain.OutcomeLengthMismatch {
		t.Fatalf("expected length_mismatch, got %s", result.Report.IngredientsFR)
	}
	if result.Report.StepsFR != domain.OutcomeEmpty {
		t.Fatalf("expected stepsFR empty, got %s", result.Report.StepsFR)
	}
	if repo.recipes[created.ID].NameFR != "Crêpes" {
		t.Fatalf("merge not persisted")
	}

	// Repeating the same patch changes nothing.
	again, err := svc.Translate(context.Background(), ports.TranslateInput{
		Actor: tradUser,
		ID:    created.ID,
		Patch: domain.TranslationPatch{NameFR: "Galettes"},
	})
	if err != nil {
		t.Fatalf("second translate failed: %v", err)
	}
	if again.Report.NameFR != domain.OutcomeAlreadyTranslated {
		t.Fatalf("expected already_translated, got %s", again.Report.NameFR)
	}
	if repo.recipes[created.ID].NameFR != "Crêpes" {
		t.Fatalf("existing translation overwritten")
	}
}
