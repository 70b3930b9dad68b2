package model

import "fmt"

// Role is a user's role within its tenant.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleUser   Role = "USER"
	RoleViewer Role = "VIEWER"
)

// ParseRole validates the string value and returns a Role if one exists.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin, RoleUser, RoleViewer:
		return Role(value), nil
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// String returns the name of the role.
func (r Role) String() string {
	return string(r)
}
