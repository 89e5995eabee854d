package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/openkitchen/recipe-catalog/internal/api/middleware"
	"github.com/openkitchen/recipe-catalog/internal/core/domain"
)

// ctxUser extracts the principal loaded by the Auth middleware. Returns nil
// for anonymous requests; the service layer turns a nil actor on a mutating
// operation into ErrUnauthorized.
func ctxUser(c echo.Context) *domain.User {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	return user
}
