package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemahub/catalog-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

type stubSink struct {
	events []domain.AuthEvent
}

func (s *stubSink) Emit(event domain.AuthEvent) {
	s.events = append(s.events, event)
}

func newTestAuthService() (*AuthService, *stubUserRepo, *stubSink) {
	repo := newStubUserRepo()
	sink := &stubSink{}
	svc := NewAuthService(repo, NewBcryptHasher(10), newTestIssuer(), sink, zerolog.Nop())
	return svc, repo, sink
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, sink := newTestAuthService()

	result, err := svc.Register(context.Background(), "Alice@Example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.User.Role != domain.RoleStandard {
		t.Fatalf("expected role standard, got %s", result.User.Role)
	}
	if result.User.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %s", result.User.Email)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected a token pair, got %+v", result.TokenPair)
	}

	stored, err := repo.FindByID(context.Background(), result.User.ID)
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.PasswordHash == "secret1" || stored.PasswordHash == "" {
		t.Fatalf("password not hashed at rest")
	}

	if len(sink.events) != 1 || sink.events[0].Type != domain.EventUserRegistered {
		t.Fatalf("expected a single user.registered event, got %+v", sink.events)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestAuthService()

	first, err := svc.Register(context.Background(), "bob@example.com", "secret1")
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if _, err := svc.Register(context.Background(), "BOB@example.com", "other-pass"); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// The original identity is unaffected by the rejected attempt.
	stored, err := repo.FindByID(context.Background(), first.User.ID)
	if err != nil {
		t.Fatalf("original user gone: %v", err)
	}
	if stored.Email != "bob@example.com" {
		t.Fatalf("original user mutated: %+v", stored)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _ := newTestAuthService()

	reg, err := svc.Register(context.Background(), "carol@example.com", "s3cret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "Carol@Example.com", "s3cret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.ID != reg.User.ID {
		t.Fatalf("login resolved a different identity")
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected a token pair")
	}
}

func TestAuthService_Login_Indistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "dave@example.com", "goodpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, unknownErr := svc.Login(context.Background(), "nobody@example.com", "whatever")
	_, wrongPassErr := svc.Login(context.Background(), "dave@example.com", "badpass")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongPassErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	if unknownErr.Error() != wrongPassErr.Error() {
		t.Fatalf("error messages differ: %q vs %q", unknownErr, wrongPassErr)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _, _ := newTestAuthService()

	reg, err := svc.Register(context.Background(), "erin@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Refresh(context.Background(), reg.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if result.User.ID != reg.User.ID {
		t.Fatalf("refresh resolved a different identity")
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected a fresh token pair")
	}
}

func TestAuthService_Refresh_MissingToken(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestAuthService_Refresh_AccessTokenRejected(t *testing.T) {
	svc, _, _ := newTestAuthService()

	reg, err := svc.Register(context.Background(), "frank@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), reg.AccessToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("access token must not refresh, got %v", err)
	}
}

func TestAuthService_Refresh_DeletedAccount(t *testing.T) {
	svc, repo, _ := newTestAuthService()

	reg, err := svc.Register(context.Background(), "gone@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	delete(repo.users, reg.User.ID)

	if _, err := svc.Refresh(context.Background(), reg.RefreshToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _, sink := newTestAuthService()

	reg, err := svc.Register(context.Background(), "heidi@example.com", "oldpass1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), reg.User.ID, "wrong", "newpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), reg.User.ID, "oldpass1", "newpass1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "heidi@example.com", "oldpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted")
	}
	if _, err := svc.Login(context.Background(), "heidi@example.com", "newpass1"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	last := sink.events[len(sink.events)-1]
	if last.Type != domain.EventUserLoggedIn {
		t.Fatalf("unexpected last event: %+v", last)
	}
}

func TestAuthService_Scenario(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, "alice@test.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if reg.User.Role != domain.RoleStandard {
		t.Fatalf("expected role standard, got %s", reg.User.Role)
	}

	if _, err := svc.Login(ctx, "alice@test.com", "wrongpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// Claims carry issued-at with second precision; cross into the next
	// second so the re-issued pair cannot collide with registration's.
	time.Sleep(1100 * time.Millisecond)

	login, err := svc.Login(ctx, "alice@test.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.AccessToken == reg.AccessToken || login.RefreshToken == reg.RefreshToken {
		t.Fatalf("login reused registration tokens")
	}

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.User.ID != reg.User.ID {
		t.Fatalf("refresh changed identity: %s vs %s", refreshed.User.ID, reg.User.ID)
	}
}
