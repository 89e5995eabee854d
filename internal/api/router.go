package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openkitchen/recipe-catalog/internal/api/handler"
	"github.com/openkitchen/recipe-catalog/internal/api/middleware"
	"github.com/openkitchen/recipe-catalog/internal/core/domain"
	"github.com/openkitchen/recipe-catalog/internal/core/ports"
	"github.com/openkitchen/recipe-catalog/internal/core/service"
)

// Dependencies carries everything the router needs. Mongo and Redis are nil
// when the corresponding backend is disabled.
type Dependencies struct {
	Recipes  ports.RecipeRepository
	Users    ports.UserRepository
	Denylist ports.TokenDenylist
	Photos   ports.PhotoStore

	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret string
	TokenTTL  time.Duration
	UploadDir string

	// CredentialLimit overrides the per-IP limit on register and login.
	// Zero value falls back to middleware.LoginLimit.
	CredentialLimit middleware.RateLimitConfig

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("recipes"))

	// --- Services ---
	tokenTTL := deps.TokenTTL
	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour
	}
	authService := service.NewAuthService(deps.Users, deps.Denylist, deps.JWTSecret, tokenTTL, deps.Log)
	recipeService := service.NewRecipeService(deps.Recipes, deps.Log)
	userService := service.NewUserService(deps.Users, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	recipeHandler := handler.NewRecipeHandler(recipeService, deps.Photos)
	userHandler := handler.NewUserHandler(userService)

	authRequired := middleware.Auth(deps.JWTSecret, deps.Users, deps.Denylist)
	authOptional := middleware.AuthOptional(deps.JWTSecret, deps.Users, deps.Denylist)
	limitCfg := deps.CredentialLimit
	if limitCfg.RequestsPerWindow == 0 {
		limitCfg = middleware.LoginLimit
	}
	credentialLimit := middleware.RateLimit(limitCfg)

	// --- Auth routes ---
	e.POST("/api/register", authHandler.Register, credentialLimit)
	e.POST("/api/login", authHandler.Login, credentialLimit)
	e.GET("/api/logout", authHandler.Logout, authRequired)
	e.GET("/api/currentUser", authHandler.CurrentUser, authOptional)

	// --- Recipe routes ---
	e.GET("/api/recipes", recipeHandler.List)
	e.GET("/api/recipes/:id", recipeHandler.Get)
	e.POST("/api/recipes", recipeHandler.Create, authRequired,
		middleware.RBAC(domain.RoleChef, domain.RoleAdmin))
	e.PUT("/api/recipes/:id", recipeHandler.Update, authRequired)
	e.DELETE("/api/recipes/:id", recipeHandler.Delete, authRequired,
		middleware.RBAC(domain.RoleAdmin))
	e.PUT("/api/recipes/:id/status", recipeHandler.SetStatus, authRequired,
		middleware.RBAC(domain.RoleAdmin))
	e.POST("/api/recipes/:id/comments", recipeHandler.AddComment, authRequired)
	e.POST("/api/recipes/:id/photos", recipeHandler.AddPhoto, authRequired)
	e.POST("/api/recipes/:id/like", recipeHandler.Like, authRequired)
	e.PUT("/api/recipes/:id/translate", recipeHandler.Translate, authRequired,
		middleware.RBAC(domain.RoleTranslator, domain.RoleChef, domain.RoleAdmin))

	// --- User administration ---
	e.GET("/api/users", userHandler.List, authRequired, middleware.RBAC(domain.RoleAdmin))
	e.PUT("/api/users/:id/role", userHandler.SetRole, authRequired, middleware.RBAC(domain.RoleAdmin))
	e.PUT("/api/updateRoleRequest", userHandler.RequestElevation, authRequired)

	// --- Static uploads ---
	if deps.UploadDir != "" {
		e.Static("/uploads", deps.UploadDir)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
