package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the access level of a user.
type Role string

// Available roles.
const (
	RoleAdmin   Role = "Admin"
	RoleCleaner Role = "Cleaner"
	RoleClient  Role = "Client"
)

// Valid returns true if the role is recognised.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCleaner, RoleClient:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a raw role value, rejecting unknown roles.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// AllRoles returns all roles in display order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleCleaner, RoleClient}
}

// User is a person known to the system: client, cleaner or administrator.
type User struct {
	ID         int       `json:"Id"`
	LastName   string    `json:"LastName"`
	FirstName  string    `json:"FirstName"`
	MiddleName *string   `json:"MiddleName"`
	Login      string    `json:"Login"`
	Password   string    `json:"Password"`
	Role       Role      `json:"Role"`
	CreatedAt  time.Time `json:"CreatedAt"`
}

// FullName returns "Last First Middle" without dangling spaces.
func (u *User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.LastName, u.FirstName, deref(u.MiddleName)} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Actor is the authenticated user driving an operation.
// It is passed explicitly to every rule that depends on who is acting.
type Actor struct {
	UserID int
	Role   Role
}

// ActorFor builds the actor for an authenticated user.
func ActorFor(u User) Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}

// Is reports whether the actor is the given user.
func (a Actor) Is(userID int) bool {
	return a.UserID == userID
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
