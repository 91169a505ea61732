package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of authorities an account can hold.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Roles returns every known role in declaration order.
func Roles() []Role {
	return []Role{RoleUser, RoleAdmin}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts a role name, ignoring case and surrounding spaces.
func ParseRole(name string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(name)))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", name)
	}
	return role, nil
}
