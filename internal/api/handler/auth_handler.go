package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openkitchen/recipe-catalog/internal/api/middleware"
	"github.com/openkitchen/recipe-catalog/internal/core/domain"
	"github.com/openkitchen/recipe-catalog/internal/core/ports"
)

// AuthHandler handles registration, login, logout and the current-user query.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	// DemandeRole optionally registers the account straight into a pending
	// elevation state: "chef" or "trad".
	DemandeRole string `json:"demandeRole"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

type currentUserResponse struct {
	User *domain.User `json:"user"`
}

// Register creates a new account with the default Cuisinier role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.DemandeRole)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Message: "registration successful", Token: token, User: user})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		// A missing account and a wrong password look the same to callers.
		if err == domain.ErrUserNotFound {
			err = domain.ErrInvalidCredentials
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Message: "login successful", Token: token, User: user})
}

// Logout revokes the presented token until its expiry.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenID, _ := c.Get(middleware.CtxTokenID).(string)
	expiresAt, _ := c.Get(middleware.CtxTokenExp).(time.Time)

	if err := h.authService.Logout(c.Request().Context(), tokenID, expiresAt); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Message: "logout successful"})
}

// CurrentUser returns the authenticated principal, or null when anonymous.
//
// @Summary      Get the current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  currentUserResponse
// @Router       /api/currentUser [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUserResponse{User: ctxUser(c)})
}
