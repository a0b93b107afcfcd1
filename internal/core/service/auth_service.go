package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemahub/catalog-api/internal/api/metrics"
	"github.com/cinemahub/catalog-api/internal/core/domain"
	"github.com/cinemahub/catalog-api/internal/core/ports"
)

// AuthService orchestrates registration, login, token refresh and password
// changes over the credential store, the password hasher and the token
// issuer. It holds no per-request state and is safe for concurrent use.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	events ports.EventSink
	logger zerolog.Logger

	// dummyHash is compared against on lookups that miss, so a login for an
	// unknown email costs one bcrypt verification just like a wrong password.
	dummyHash string
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, events ports.EventSink, logger zerolog.Logger) *AuthService {
	dummy, err := hasher.Hash("credential-timing-pad")
	if err != nil {
		// Hash failure at startup means the cost factor cannot be enforced
		// at all; the service must not come up in that state.
		panic(err)
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		events:    events,
		logger:    logger,
		dummyHash: dummy,
	}
}

// Register creates a new standard-role account and returns its first token
// pair. The email is lowercased before any lookup so uniqueness is
// case-insensitive.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleStandard,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		// Two concurrent registrations can race past the lookup; the unique
		// index settles it.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.emit(domain.EventUserRegistered, created)
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return s.authResult(created)
}

// Login verifies the credentials and returns a fresh token pair. An unknown
// email and a wrong password are indistinguishable to the caller, both in
// error kind and in latency.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.emit(domain.EventUserLoggedIn, user)
	return s.authResult(user)
}

// Refresh exchanges a valid refresh token for a brand-new access/refresh
// pair. The previous refresh token is not invalidated server-side; tokens
// are stateless and expire naturally.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if refreshToken == "" {
		return nil, domain.ErrMissingToken
	}

	subjectID, err := s.tokens.Verify(refreshToken, domain.PurposeRefresh)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrUnauthorized
	}

	user, err := s.repo.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	s.emit(domain.EventTokenRefreshed, user)
	return s.authResult(user)
}

// ChangePassword re-hashes and persists a new password after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthorized
		}
		return err
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	if _, err := s.repo.Save(ctx, user); err != nil {
		return err
	}

	s.emit(domain.EventPasswordChanged, user)
	s.logger.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

// authResult issues a token pair for the user and applies the public
// projection. Every success path of the service funnels through here.
func (s *AuthService) authResult(user *domain.User) (*domain.AuthResult, error) {
	access, err := s.tokens.Issue(user.ID, domain.PurposeAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(user.ID, domain.PurposeRefresh)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{
		User:      user.Public(),
		TokenPair: domain.TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}

func (s *AuthService) emit(eventType string, user *domain.User) {
	if s.events == nil {
		return
	}
	s.events.Emit(domain.AuthEvent{
		Type:      eventType,
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now().UTC(),
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
