package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openkitchen/recipe-catalog/internal/api/metrics"
	"github.com/openkitchen/recipe-catalog/internal/core/ports"
)

// UserHandler handles user administration and role-elevation requests.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type roleRequestBody struct {
	// Requested elevation target: "chef" or "trad".
	DemandeRole string `json:"demandeRole" validate:"required,oneof=chef trad"`
}

// List handles GET /api/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context(), ctxUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// SetRole handles PUT /api/users/:id/role.
//
// @Summary      Set a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "User id"
// @Param        body  body      setRoleRequest  true  "Target role"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/{id}/role [put]
func (h *UserHandler) SetRole(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.SetRole(c.Request().Context(), ctxUser(c), id, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Message: "role updated", User: user})
}

// RequestElevation handles PUT /api/updateRoleRequest. Only a Cuisinier may
// file a request; the account moves into the matching pending role until an
// administrator resolves it.
//
// @Summary      Request a role elevation
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roleRequestBody  true  "chef or trad"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/updateRoleRequest [put]
func (h *UserHandler) RequestElevation(c echo.Context) error {
	var req roleRequestBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.RequestElevation(c.Request().Context(), ctxUser(c), req.DemandeRole)
	if err != nil {
		return err
	}

	metrics.RoleRequestsTotal.WithLabelValues(req.DemandeRole).Inc()
	return c.JSON(http.StatusOK, userResponse{Message: "role request recorded", User: user})
}
