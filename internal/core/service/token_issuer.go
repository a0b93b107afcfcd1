package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cinemahub/catalog-api/internal/core/domain"
)

// Audience values tag each token with its purpose so an access token can
// never be replayed at the refresh endpoint or vice versa.
const (
	audienceAccess  = "auth:access"
	audienceRefresh = "auth:refresh"
)

// JWTIssuer mints and verifies HS256-signed tokens. The signing secret is
// injected once at construction and read-only afterwards, so the issuer is
// safe for concurrent use.
type JWTIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewJWTIssuer(secret string, accessTTL, refreshTTL time.Duration) *JWTIssuer {
	if accessTTL <= 0 {
		accessTTL = domain.DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = domain.DefaultRefreshTokenTTL
	}
	return &JWTIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue signs a token for subjectID with the expiry window of the given
// purpose.
func (i *JWTIssuer) Issue(subjectID string, purpose domain.TokenPurpose) (string, error) {
	now := i.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl(purpose))),
		Audience:  jwt.ClaimStrings{audience(purpose)},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and purpose, returning the embedded
// subject id. Expiry is only reported as domain.ErrTokenExpired when the
// token is otherwise sound, so callers can distinguish "retry via refresh"
// from "force re-login".
func (i *JWTIssuer) Verify(tokenStr string, purpose domain.TokenPurpose) (string, error) {
	if tokenStr == "" {
		return "", domain.ErrMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithAudience(audience(purpose)), jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil {
		// Purpose mismatch outranks expiry: a stale token of the wrong kind
		// must not be nudged towards the refresh flow.
		if errors.Is(err, jwt.ErrTokenInvalidAudience) {
			return "", domain.ErrTokenInvalid
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !tkn.Valid || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}

	return claims.Subject, nil
}

func (i *JWTIssuer) ttl(purpose domain.TokenPurpose) time.Duration {
	if purpose == domain.PurposeRefresh {
		return i.refreshTTL
	}
	return i.accessTTL
}

func audience(purpose domain.TokenPurpose) string {
	if purpose == domain.PurposeRefresh {
		return audienceRefresh
	}
	return audienceAccess
}
