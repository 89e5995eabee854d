package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,         default=3000"`
	Env       string `env:"ENV,          default=development"`
	JWTSecret string `env:"JWT_SECRET,   default=secret_recipes_key"`
	LogLevel  string `env:"LOG_LEVEL,    default=info"`

	// StoreDriver selects the persistence backend: "memory" (default,
	// seeded from SeedFile at boot) or "mongo".
	StoreDriver string `env:"STORE_DRIVER, default=memory"`
	SeedFile    string `env:"SEED_FILE,    default=data/recipes.json"`
	UploadDir   string `env:"UPLOAD_DIR,   default=public/uploads"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=recipe_catalog"`
}

// RedisConfig configures the revoked-token denylist. An empty Addr disables
// Redis entirely; logout then becomes a client-side-only operation.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
