package domain

import (
	"errors"
	"time"
)

// Role is the closed enumeration of user roles. The French wire values are
// part of the external contract and are preserved as-is.
type Role string

const (
	RoleAdmin             Role = "Administrateur"
	RoleChef              Role = "Chef"
	RoleCook              Role = "Cuisinier" // default at registration
	RoleTranslator        Role = "Traducteur"
	RolePendingChef       Role = "DemandeChef"
	RolePendingTranslator Role = "DemandeTraducteur"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("username already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role value")
var ErrInvalidRoleRequest = errors.New("invalid role request")

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleChef, RoleCook, RoleTranslator, RolePendingChef, RolePendingTranslator:
		return true
	}
	return false
}

// CanCreateRecipes reports whether the role may author new recipes.
func (r Role) CanCreateRecipes() bool {
	switch r {
	case RoleChef, RoleAdmin:
		return true
	}
	return false
}

// CanTranslate reports whether the role may submit translations.
func (r Role) CanTranslate() bool {
	switch r {
	case RoleTranslator, RoleChef, RoleAdmin:
		return true
	}
	return false
}

// CanModerate reports whether the role may delete recipes and set their
// editorial status. Administrators only.
func (r Role) CanModerate() bool {
	return r == RoleAdmin
}

// CanManageUsers reports whether the role may list users and change roles.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// RoleForRequest maps a self-service elevation request value to its pending
// role. Only "chef" and "trad" are accepted.
func RoleForRequest(requested string) (Role, error) {
	switch requested {
	case "chef":
		return RolePendingChef, nil
	case "trad":
		return RolePendingTranslator, nil
	}
	return "", ErrInvalidRoleRequest
}

// User models a registered account. Users are never deleted; only the role
// changes after creation.
type User struct {
	ID           int       `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// CanEditRecipe reports whether the user may update the given recipe:
// administrators edit anything, everyone else only their own recipes.
func (u *User) CanEditRecipe(r *Recipe) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return r.Author == u.Username
}
