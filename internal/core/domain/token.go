package domain

import "time"

// TokenPurpose distinguishes short-lived access tokens from long-lived
// refresh tokens. A token issued for one purpose is never accepted where the
// other is expected.
type TokenPurpose string

const (
	PurposeAccess  TokenPurpose = "access"
	PurposeRefresh TokenPurpose = "refresh"
)

const (
	DefaultAccessTokenTTL  = time.Hour
	DefaultRefreshTokenTTL = 15 * 24 * time.Hour
)

// TokenPair is the access/refresh pair minted on register, login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult is the sole success shape returned by register, login and
// refresh: the public user projection plus a fresh token pair.
type AuthResult struct {
	User PublicUser `json:"user"`
	TokenPair
}
