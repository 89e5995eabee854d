package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openkitchen/recipe-catalog/internal/api/middleware"
	"github.com/openkitchen/recipe-catalog/internal/core/domain"
	"github.com/openkitchen/recipe-catalog/internal/infrastructure/db/memory"
	"github.com/openkitchen/recipe-catalog/internal/infrastructure/seed"
)

var (
	routerOnce sync.Once
	testRouter *echo.Echo
)

// The prometheus middleware registers collectors globally, so the router is
// built once for the whole test binary.
func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	routerOnce.Do(func() {
		recipes := memory.NewRecipeRepository()
		users := memory.NewUserRepository()
		if err := seed.EnsureDefaultUsers(context.Background(), users, zerolog.Nop()); err != nil {
			t.Fatalf("seed users: %v", err)
		}
		recipes.Seed([]*domain.Recipe{
			{
				Name:        "Crepes",
				NameFR:      "Crêpes",
				Steps:       []string{"Whisk", "Cook"},
				Ingredients: []domain.Ingredient{{Text: "flour"}},
				Author:      "chef1",
				Status:      domain.StatusPublished,
				Comments:    []domain.Comment{},
				Photos:      []string{},
				Timers:      []float64{10, 15},
			},
		})

		testRouter = NewRouter(Dependencies{
			Recipes:   recipes,
			Users:     users,
			JWTSecret: "test-secret",
			Log:       zerolog.Nop(),
			// Every request in the binary shares one client IP.
			CredentialLimit: middleware.RateLimitConfig{
				RequestsPerWindow: 1000,
				Window:            time.Minute,
				Burst:             1000,
			},
		})
	})
	return testRouter
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/api/login", "",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login response: %v", err)
	}
	return resp.Token
}

func TestRouter_PublicListing(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodGet, "/api/recipes", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var recipes []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &recipes); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(recipes) == 0 {
		t.Fatalf("expected seeded recipes")
	}
}

func TestRouter_GetRecipeTotalTime(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodGet, "/api/recipes/1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["totalTime"] != float64(25) {
		t.Fatalf("expected totalTime 25, got %v", resp["totalTime"])
	}
}

func TestRouter_RecipeNotFoundMapsTo404(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodGet, "/api/recipes/999", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_CreateRequiresChef(t *testing.T) {
	e := newTestRouter(t)

	// Anonymous.
	rec := doJSON(t, e, http.MethodPost, "/api/recipes", "", `{"name":"Tarte"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: expected 401, got %d", rec.Code)
	}

	// Cuisinier is blocked at the route.
	cookToken := login(t, e, "cuisinier1", "cuisinier1")
	rec = doJSON(t, e, http.MethodPost, "/api/recipes", cookToken, `{"name":"Tarte"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("cook create: expected 403, got %d", rec.Code)
	}

	// Chef succeeds.
	chefToken := login(t, e, "chef1", "chef1")
	rec = doJSON(t, e, http.MethodPost, "/api/recipes", chefToken, `{"name":"Tarte","steps":["bake"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("chef create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Recipe struct {
			ID     int    `json:"id"`
			Author string `json:"author"`
			Status string `json:"status"`
		} `json:"recipe"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Recipe.Author != "chef1" || resp.Recipe.Status != "en cours" {
		t.Fatalf("unexpected recipe: %+v", resp.Recipe)
	}
}

func TestRouter_TranslateFlow(t *testing.T) {
	e := newTestRouter(t)

	chefToken := login(t, e, "chef1", "chef1")
	rec := doJSON(t, e, http.MethodPost, "/api/recipes", chefToken,
		`{"name":"Soup","steps":["boil"],"ingredients":["water"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}
	var created struct {
		Recipe struct {
			ID int `json:"id"`
		} `json:"recipe"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	// A Cuisinier may not translate.
	cookToken := login(t, e, "cuisinier1", "cuisinier1")
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/recipes/%d/translate", created.Recipe.ID),
		cookToken, `{"nameFR":"Soupe"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("cook translate: expected 403, got %d", rec.Code)
	}

	tradToken := login(t, e, "trad1", "trad1")
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/recipes/%d/translate", created.Recipe.ID),
		tradToken, `{"nameFR":"Soupe","ingredientsFR":["eau"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("translate: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Merge map[string]string `json:"merge"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Merge["nameFR"] != "merged" || resp.Merge["ingredientsFR"] != "merged" {
		t.Fatalf("unexpected merge report: %+v", resp.Merge)
	}

	// A second translation of the same field is dropped, not errored.
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/recipes/%d/translate", created.Recipe.ID),
		tradToken, `{"nameFR":"Potage"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat translate: expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Merge["nameFR"] != "already_translated" {
		t.Fatalf("expected already_translated, got %+v", resp.Merge)
	}
}

func TestRouter_StatusAndModeration(t *testing.T) {
	e := newTestRouter(t)

	chefToken := login(t, e, "chef1", "chef1")
	rec := doJSON(t, e, http.MethodPost, "/api/recipes", chefToken, `{"name":"Stew"}`)
	var created struct {
		Recipe struct {
			ID int `json:"id"`
		} `json:"recipe"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	// Chef cannot set status or delete.
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/recipes/%d/status", created.Recipe.ID),
		chefToken, `{"status":"publiée"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("chef set status: expected 403, got %d", rec.Code)
	}
	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/recipes/%d", created.Recipe.ID), chefToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("chef delete: expected 403, got %d", rec.Code)
	}

	adminToken := login(t, e, "admin", "admin")
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/recipes/%d/status", created.Recipe.ID),
		adminToken, `{"status":"terminée"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin set status: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var statusResp struct {
		NullCount int `json:"nullCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &statusResp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	// Only the English name was supplied at creation.
	if statusResp.NullCount != 5 {
		t.Fatalf("expected nullCount 5, got %d", statusResp.NullCount)
	}

	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/recipes/%d/status", created.Recipe.ID),
		adminToken, `{"status":"en cours"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/recipes/%d", created.Recipe.ID), adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin delete: expected 200, got %d", rec.Code)
	}
}

func TestRouter_RegisterConflictMapsTo409(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodPost, "/api/register", "", `{"username":"admin","password":"x"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestRouter_RoleElevationFlow(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodPost, "/api/register", "", `{"username":"newcook","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	token := login(t, e, "newcook", "pw")
	rec = doJSON(t, e, http.MethodPut, "/api/updateRoleRequest", token, `{"demandeRole":"chef"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("role request: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		User struct {
			ID   int    `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.Role != "DemandeChef" {
		t.Fatalf("expected DemandeChef, got %s", resp.User.Role)
	}

	// Users listing is admin only.
	rec = doJSON(t, e, http.MethodGet, "/api/users", token, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin list: expected 403, got %d", rec.Code)
	}

	// The admin approves by setting the real role. The existing token picks
	// up the new role immediately.
	adminToken := login(t, e, "admin", "admin")
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/users/%d/role", resp.User.ID),
		adminToken, `{"role":"Chef"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, e, http.MethodPost, "/api/recipes", token, `{"name":"First dish"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("promoted user create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_CurrentUser(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodGet, "/api/currentUser", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous: expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["user"] != nil {
		t.Fatalf("expected null user, got %v", resp["user"])
	}

	token := login(t, e, "trad1", "trad1")
	rec = doJSON(t, e, http.MethodGet, "/api/currentUser", token, "")
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "trad1" {
		t.Fatalf("unexpected user: %+v", resp)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}

	// No Mongo or Redis configured: readiness has nothing to check and is ok.
	rec = doJSON(t, e, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, e, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}
