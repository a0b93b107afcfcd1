package domain

import "time"

const (
	EventUserRegistered  = "user.registered"
	EventUserLoggedIn    = "user.logged_in"
	EventTokenRefreshed  = "token.refreshed"
	EventPasswordChanged = "password.changed"
)

// AuthEvent is emitted on the notification side-channel after a successful
// auth operation. It carries no secret material.
type AuthEvent struct {
	Type      string
	UserID    string
	Email     string
	Timestamp time.Time
}
