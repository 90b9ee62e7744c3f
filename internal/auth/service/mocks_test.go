package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/AlibekovAA/movie-watchlist/internal/auth/service"
	"github.com/AlibekovAA/movie-watchlist/internal/common/clock"
	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
	userdomain "github.com/AlibekovAA/movie-watchlist/internal/user/domain"
	userrepo "github.com/AlibekovAA/movie-watchlist/internal/user/repository"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

type mockUserRepo struct {
	findByEmailOrUsernameFunc func(ctx context.Context, email, username string) (userdomain.User, error)
	findByEmailFunc           func(ctx context.Context, email string) (userdomain.User, error)
	createFunc                func(ctx context.Context, username, email, passwordHash string) (userdomain.User, error)
	listFunc                  func(ctx context.Context) ([]userdomain.Summary, error)
	createCalls               int
}

func (m *mockUserRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (userdomain.User, error) {
	if m.findByEmailOrUsernameFunc != nil {
		return m.findByEmailOrUsernameFunc(ctx, email, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, username, email, passwordHash string) (userdomain.User, error) {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, username, email, passwordHash)
	}
	return userdomain.User{ID: 1, Username: username, Email: email, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]userdomain.Summary, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []userdomain.Summary{}, nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "jti-123", nil
}

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func setupAuthService(t *testing.T) (*service.AuthService, *mockUserRepo, *mockHasher, *mockIDGenerator, *clock.MockClock) {
	t.Helper()

	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	idGen := &mockIDGenerator{}
	mockClock := clock.NewMockClock(testNow)
	issuer := service.NewTokenIssuer(testSecret, idGen, 24*time.Hour, mockClock)
	log := logger.NewWithWriter(io.Discard, "test", "debug")

	return service.NewAuthService(repo, hasher, issuer, log), repo, hasher, idGen, mockClock
}
