package main

import (
	"context"
	"time"

	"github.com/openkitchen/recipe-catalog/internal/api"
	"github.com/openkitchen/recipe-catalog/internal/infrastructure/config"
	memorydb "github.com/openkitchen/recipe-catalog/internal/infrastructure/db/memory"
	mongodb "github.com/openkitchen/recipe-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/openkitchen/recipe-catalog/internal/infrastructure/db/redis"
	"github.com/openkitchen/recipe-catalog/internal/infrastructure/seed"
	"github.com/openkitchen/recipe-catalog/internal/infrastructure/storage"
	"github.com/openkitchen/recipe-catalog/pkg/logger"

	_ "github.com/openkitchen/recipe-catalog/docs"
)

// @title          Recipe Catalog API
// @version        1.0
// @description    Bilingual recipe catalog with role-based contribution workflow.
// @BasePath       /
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()
	deps := api.Dependencies{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  24 * time.Hour,
		UploadDir: cfg.UploadDir,
		Log:       log,
	}

	switch cfg.StoreDriver {
	case "mongo":
		_, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  10 * time.Second,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongodb connection failed")
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

		recipes := mongodb.NewRecipeRepository(db)
		users := mongodb.NewUserRepository(db)
		if err := recipes.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("recipe index creation failed")
		}
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("user index creation failed")
		}
		deps.Recipes = recipes
		deps.Users = users
		deps.Mongo = db

	default:
		recipes := memorydb.NewRecipeRepository()
		users := memorydb.NewUserRepository()

		if cfg.SeedFile != "" {
			seeded, err := seed.LoadRecipes(cfg.SeedFile)
			if err != nil {
				log.Warn().Err(err).Str("file", cfg.SeedFile).Msg("recipe seed skipped")
			} else {
				recipes.Seed(seeded)
				log.Info().Int("count", len(seeded)).Msg("recipes seeded")
			}
		}
		deps.Recipes = recipes
		deps.Users = users
	}

	if err := seed.EnsureDefaultUsers(ctx, deps.Users, log); err != nil {
		log.Fatal().Err(err).Msg("default user creation failed")
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:    cfg.Redis.Addr,
			DB:      cfg.Redis.DB,
			Timeout: 5 * time.Second,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
		deps.Redis = rdb
		deps.Denylist = redisdb.NewTokenDenylist(rdb)
	} else {
		// No Redis means no server-side token revocation.
		log.Warn().Msg("redis disabled, logout will not revoke tokens")
	}

	photos, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("upload directory setup failed")
	}
	deps.Photos = photos

	e := api.NewRouter(deps)
	log.Info().Str("port", cfg.Port).Str("driver", cfg.StoreDriver).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
