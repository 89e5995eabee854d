package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openkitchen/recipe-catalog/internal/api/metrics"
	"github.com/openkitchen/recipe-catalog/internal/core/domain"
	"github.com/openkitchen/recipe-catalog/internal/core/ports"
)

// RecipeHandler handles HTTP requests for recipe operations.
type RecipeHandler struct {
	service ports.RecipeService
	photos  ports.PhotoStore
}

func NewRecipeHandler(service ports.RecipeService, photos ports.PhotoStore) *RecipeHandler {
	return &RecipeHandler{service: service, photos: photos}
}

func recipeID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid recipe id")
	}
	return id, nil
}

// List handles GET /api/recipes with optional conjunctive filters.
//
// @Summary      List recipes
// @Tags         recipes
// @Produce      json
// @Param        q           query  string  false  "Free-text search on name or steps"
// @Param        glutenFree  query  bool    false  "Only recipes tagged NoGluten"
// @Param        vegan       query  bool    false  "Only recipes tagged Vegan"
// @Param        language    query  string  false  "fr or en"
// @Success      200  {array}  domain.Recipe
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	filter := domain.RecipeFilter{
		Query:      c.QueryParam("q"),
		GlutenFree: c.QueryParam("glutenFree") == "true",
		Vegan:      c.QueryParam("vegan") == "true",
		Language:   c.QueryParam("language"),
	}

	recipes, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipes)
}

// Get handles GET /api/recipes/:id.
//
// @Summary      Get a recipe with its total time
// @Tags         recipes
// @Produce      json
// @Param        id   path      int  true  "Recipe id"
// @Success      200  {object}  recipeDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipeDetailResponse{Recipe: detail.Recipe, TotalTime: detail.TotalTime})
}

// Create handles POST /api/recipes.
//
// @Summary      Create a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRecipeRequest  true  "Recipe content"
// @Success      201   {object}  recipeResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	var req createRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actor := ctxUser(c)
	created, err := h.service.Create(c.Request().Context(), toCreateInput(req, actor))
	if err != nil {
		return err
	}

	metrics.RecipesCreatedTotal.WithLabelValues(string(actor.Role)).Inc()
	return c.JSON(http.StatusCreated, recipeResponse{Message: "recipe created", Recipe: created})
}

// Update handles PUT /api/recipes/:id.
//
// @Summary      Update a recipe's content fields
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Recipe id"
// @Param        body  body      updateRecipeRequest  true  "Fields to change"
// @Success      200   {object}  recipeResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c echo.Context) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}

	var req updateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.Update(c.Request().Context(), toUpdateInput(req, ctxUser(c), id))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipeResponse{Message: "recipe updated", Recipe: updated})
}

// Delete handles DELETE /api/recipes/:id.
//
// @Summary      Delete a recipe
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Recipe id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ctxUser(c), id); err != nil {
		return err
	}

	metrics.RecipesDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "recipe deleted"})
}

// SetStatus handles PUT /api/recipes/:id/status.
//
// @Summary      Set a recipe's editorial status
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Recipe id"
// @Param        body  body      setStatusRequest  true  "terminée or publiée"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/recipes/{id}/status [put]
func (h *RecipeHandler) SetStatus(c echo.Context) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.SetStatus(c.Request().Context(), ports.SetStatusInput{
		Actor:  ctxUser(c),
		ID:     id,
		Status: req.Status,
	})
	if err != nil {
		return err
	}

	metrics.StatusUpdatesTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, statusResponse{
		Message:   "recipe status updated",
		Recipe:    result.Recipe,
		NullCount: result.NullCount,
	})
}

// AddComment handles POST /api/recipes/:id/comments.
//
// @Summary      Comment on a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Recipe id"
// @Param        body  body      commentRequest  true  "Comment text"
// @Success      201   {object}  commentResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/recipes/{id}/comments [post]
func (h *RecipeHandler) AddComment(c echo.Context) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.AddComment(c.Request().Context(), ctxUser(c), id, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, commentResponse{Message: "comment added", Comment: *comment})
}

// AddPhoto handles POST /api/recipes/:id/photos. Accepts either a multipart
// upload under the "photo" field or a photoURL passed through as-is.
//
// @Summary      Attach a photo to a recipe
// @Tags         recipes
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int     true   "Recipe id"
// @Param        photo  formData  file    false  "Photo upload"
// @Success      201    {object}  photoResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/recipes/{id}/photos [post]
func (h *RecipeHandler) AddPhoto(c echo.Context) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}

	ref, err := h.photoReference(c)
	if err != nil {
		return err
	}
	if ref == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "photo upload or photoURL required")
	}

	if err := h.service.AddPhoto(c.Request().Context(), ctxUser(c), id, ref); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, photoResponse{Message: "photo added", PhotoURL: ref})
}

// photoReference resolves the stored reference: uploaded files go through
// the photo store, URL submissions are stored verbatim.
func (h *RecipeHandler) photoReference(c echo.Context) (string, error) {
	file, err := c.FormFile("photo")
	if err != nil {
		// No upload; fall back to the photoURL field.
		var req photoRequest
		if bindErr := c.Bind(&req); bindErr != nil {
			return "", echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		return req.PhotoURL, nil
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return h.photos.Save(c.Request().Context(), file.Filename, src)
}

// Like handles POST /api/recipes/:id/like.
//
// @Summary      Like a recipe
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Recipe id"
// @Success      200  {object}  likeResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id}/like [post]
func (h *RecipeHandler) Like(c echo.Context) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}

	likes, err := h.service.Like(c.Request().Context(), ctxUser(c), id)
	if err != nil {
		return err
	}

	metrics.LikesTotal.Inc()
	return c.JSON(http.StatusOK, likeResponse{Message: "recipe liked", Likes: likes})
}

// Translate handles PUT /api/recipes/:id/translate. The merge is strictly
// additive; rejected fields are reported, not errored.
//
// @Summary      Translate a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Recipe id"
// @Param        body  body      translateRequest  true  "French fields"
// @Success      200   {object}  translateResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/recipes/{id}/translate [put]
func (h *RecipeHandler) Translate(c echo.Context) error {
	id, err := recipeID(c)
	if err != nil {
		return err
	}

	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Translate(c.Request().Context(), ports.TranslateInput{
		Actor: ctxUser(c),
		ID:    id,
		Patch: toTranslatePatch(req),
	})
	if err != nil {
		return err
	}

	metrics.TranslationOutcomesTotal.WithLabelValues("nameFR", string(result.Report.NameFR)).Inc()
	metrics.TranslationOutcomesTotal.WithLabelValues("stepsFR", string(result.Report.StepsFR)).Inc()
	metrics.TranslationOutcomesTotal.WithLabelValues("ingredientsFR", string(result.Report.IngredientsFR)).Inc()

	return c.JSON(http.StatusOK, translateResponse{
		Message: "translation updated",
		Recipe:  result.Recipe,
		Merge:   result.Report,
	})
}
