package service

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cinemahub/catalog-api/internal/api/metrics"
	"github.com/cinemahub/catalog-api/internal/core/domain"
)

// minBcryptCost is the floor below which a configured cost is rejected.
// bcrypt.DefaultCost is 10; anything weaker gives no meaningful work factor.
const minBcryptCost = 10

// BcryptHasher hashes passwords with bcrypt. Each call salts independently,
// so two hashes of the same plaintext never compare equal as strings.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost factor, clamped to a
// minimum of 10.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < minBcryptCost {
		cost = minBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash produces a salted bcrypt digest of plaintext. A failure here means the
// underlying primitive could not run at the configured cost and is fatal to
// the operation; it is never retried.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	start := time.Now()
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrHashing, err)
	}
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest. bcrypt's
// comparison is constant time with respect to where a mismatch occurs.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
