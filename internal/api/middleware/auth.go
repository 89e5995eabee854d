package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/openkitchen/recipe-catalog/internal/core/ports"
)

// Context keys set by the auth middleware.
const (
	CtxUser     = "user"
	CtxTokenID  = "token_id"
	CtxTokenExp = "token_exp"
)

// Auth validates the bearer JWT, rejects revoked tokens, and re-loads the
// user by id from the store on every request, so a role change by an admin
// takes effect immediately rather than at the next login. denylist may be
// nil when no revocation backend is configured.
func Auth(jwtSecret string, users ports.UserRepository, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return authenticate(jwtSecret, users, denylist, true)
}

// AuthOptional behaves like Auth but lets requests without an Authorization
// header through as anonymous. A header that is present but invalid is still
// rejected.
func AuthOptional(jwtSecret string, users ports.UserRepository, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return authenticate(jwtSecret, users, denylist, false)
}

func authenticate(jwtSecret string, users ports.UserRepository, denylist ports.TokenDenylist, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if required {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
				}
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			tokenID, _ := claims["jti"].(string)
			if denylist != nil && tokenID != "" {
				revoked, err := denylist.IsRevoked(c.Request().Context(), tokenID)
				if err != nil {
					return err
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			sub, _ := claims["sub"].(string)
			userID, err := strconv.Atoi(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				// The account behind a structurally valid token must still
				// exist in the store.
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}

			c.Set(CtxUser, user)
			c.Set(CtxTokenID, tokenID)
			if exp, ok := claims["exp"].(float64); ok {
				c.Set(CtxTokenExp, time.Unix(int64(exp), 0))
			}

			return next(c)
		}
	}
}
