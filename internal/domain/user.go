package domain

import (
	"net/mail"
	"strings"
	"time"
)

type User struct {
	ID             string
	Email          string
	Name           string
	Role           Role
	Status         UserStatus
	PasswordHash   string
	DefaultProject *string
	DefaultTask    *string
	CreatedAt      time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsActive() bool {
	return u.Status == UserActive
}

// NormalizeEmail lowercases and trims an address and checks its syntax.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", Validationf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", Validationf("invalid email address %q", raw)
	}
	return email, nil
}
