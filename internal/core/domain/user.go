package domain

import (
	"errors"
	"time"
)

const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingToken       = errors.New("missing token")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrHashing            = errors.New("password hashing failed")
)

// User is the durable record of a registered account. PasswordHash holds the
// bcrypt digest and must never be serialized outward; every response path
// goes through Public().
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the projection of a User that may leave the service.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public strips secret material before the user crosses the trust boundary.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}

// IsAdmin reports whether the user may perform privileged operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
