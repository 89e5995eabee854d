// Package seed loads the boot-time recipe collection and bootstraps the
// well-known default accounts.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
	"github.com/openkitchen/recipe-catalog/internal/core/ports"
)

// LoadRecipes parses the seed file into an ordered recipe list. Ids are left
// unset; the store assigns them in file order. Callers treat an error as
// non-fatal and start with an empty catalog.
func LoadRecipes(path string) ([]*domain.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var recipes []*domain.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return recipes, nil
}

// defaultAccounts are created when the user store is empty, one per role,
// so a fresh install is immediately usable.
var defaultAccounts = []struct {
	username string
	password string
	role     domain.Role
}{
	{"admin", "admin", domain.RoleAdmin},
	{"chef1", "chef1", domain.RoleChef},
	{"cuisinier1", "cuisinier1", domain.RoleCook},
	{"trad1", "trad1", domain.RoleTranslator},
}

// EnsureDefaultUsers creates the default accounts if no users exist yet.
func EnsureDefaultUsers(ctx context.Context, users ports.UserRepository, log zerolog.Logger) error {
	existing, err := users.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, acc := range defaultAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := users.Create(ctx, &domain.User{
			Username:     acc.username,
			PasswordHash: string(hash),
			Role:         acc.role,
			CreatedAt:    time.Now().UTC(),
		}); err != nil {
			return err
		}
		log.Info().Str("username", acc.username).Str("role", string(acc.role)).Msg("default user created")
	}
	return nil
}
