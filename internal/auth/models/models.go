package models

import (
	"strings"
	"time"

	id "minnetherapy/pkg/domain"
)

// User is an account that can sign in. Providers, patients and admins share
// the same record; the Role decides which areas they may enter.
type User struct {
	ID              id.UserID
	Email           string
	PasswordHash    string
	Role            id.Role
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
}

func (u *User) IsEmailVerified() bool {
	return u.EmailVerifiedAt != nil
}

// NormalizeEmail is the key used for case-insensitive email lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LoginResult is returned after a successful password login.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	UserID      id.UserID
	Role        id.Role
}
