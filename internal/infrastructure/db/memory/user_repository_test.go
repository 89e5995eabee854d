package memory

import (
	"context"
	"testing"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo := NewUserRepository()

	created, err := repo.Create(context.Background(), &domain.User{Username: "alice", Role: domain.RoleCook})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}

	byID, err := repo.FindByID(context.Background(), 1)
	if err != nil || byID.Username != "alice" {
		t.Fatalf("find by id: %+v %v", byID, err)
	}

	byName, err := repo.FindByUsername(context.Background(), "alice")
	if err != nil || byName.ID != 1 {
		t.Fatalf("find by username: %+v %v", byName, err)
	}

	if _, err := repo.FindByUsername(context.Background(), "Alice"); err != domain.ErrUserNotFound {
		t.Fatalf("username lookup should be case-sensitive, got %v", err)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository()

	if _, err := repo.Create(context.Background(), &domain.User{Username: "alice"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.User{Username: "alice"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserRepository_UpdateRole(t *testing.T) {
	repo := NewUserRepository()

	created, _ := repo.Create(context.Background(), &domain.User{Username: "bob", Role: domain.RoleCook})

	updated, err := repo.UpdateRole(context.Background(), created.ID, domain.RolePendingChef)
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != domain.RolePendingChef {
		t.Fatalf("role not updated: %s", updated.Role)
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.Role != domain.RolePendingChef {
		t.Fatalf("role not persisted: %s", stored.Role)
	}

	if _, err := repo.UpdateRole(context.Background(), 99, domain.RoleChef); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_ListRegistrationOrder(t *testing.T) {
	repo := NewUserRepository()
	for _, name := range []string{"admin", "chef1", "cuisinier1"} {
		if _, err := repo.Create(context.Background(), &domain.User{Username: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 3 || users[0].Username != "admin" || users[2].Username != "cuisinier1" {
		t.Fatalf("unexpected order: %+v", users)
	}
}

func TestUserRepository_CloneOnRead(t *testing.T) {
	repo := NewUserRepository()
	created, _ := repo.Create(context.Background(), &domain.User{Username: "alice", Role: domain.RoleCook})

	got, _ := repo.FindByID(context.Background(), created.ID)
	got.Role = domain.RoleAdmin

	again, _ := repo.FindByID(context.Background(), created.ID)
	if again.Role != domain.RoleCook {
		t.Fatalf("stored record aliased by reader: %s", again.Role)
	}
}
