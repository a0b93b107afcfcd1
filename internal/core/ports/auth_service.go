package ports

import (
	"context"

	"github.com/cinemahub/catalog-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
