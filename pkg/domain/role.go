package domain

import dErrors "minnetherapy/pkg/domain-errors"

// Role is the account role that gates which areas of the application a user
// may enter.
//
// Usage: construct via ParseRole at trust boundaries (token claims, seed
// input); direct casting bypasses validation.
type Role string

const (
	RoleProvider Role = "PROVIDER"
	RolePatient  Role = "PATIENT"
	RoleAdmin    Role = "ADMIN"
)

var validRoles = map[Role]bool{
	RoleProvider: true,
	RolePatient:  true,
	RoleAdmin:    true,
}

// ParseRole constructs a Role from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := Role(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	return r, nil
}

// IsValid checks if the role is one of the supported values.
func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) String() string {
	return string(r)
}
