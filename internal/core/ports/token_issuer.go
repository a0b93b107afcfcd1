package ports

import "github.com/cinemahub/catalog-api/internal/core/domain"

// TokenIssuer mints and verifies signed, time-bounded tokens carrying a
// subject identity. Verify fails with domain.ErrTokenExpired when the
// signature is valid but the token is past its window, and with
// domain.ErrTokenInvalid on any other defect (bad signature, malformed
// payload, wrong purpose).
type TokenIssuer interface {
	Issue(subjectID string, purpose domain.TokenPurpose) (string, error)
	Verify(token string, purpose domain.TokenPurpose) (string, error)
}
