package ports

import (
	"context"

	"github.com/cinemahub/catalog-api/internal/core/domain"
)

// UserRepository is the credential store accessor. Email uniqueness is
// enforced at the store level; Insert returns domain.ErrDuplicateEmail on a
// collision and the lookups return domain.ErrUserNotFound when no record
// matches.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
