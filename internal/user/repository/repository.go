package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/movie-watchlist/internal/user/domain"
)

const table = "users"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("username or email already exists")
)

// Repository is the credential store. Lookups are exact and
// case-sensitive; the unique constraints on username and email are the
// authoritative duplicate check.
type Repository interface {
	FindByEmailOrUsername(ctx context.Context, email, username string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, username, email, passwordHash string) (domain.User, error)
	List(ctx context.Context) ([]domain.Summary, error)
}
