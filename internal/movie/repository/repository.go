package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/movie-watchlist/internal/movie/domain"
)

const table = "movies"

var ErrMovieNotFound = errors.New("movie not found")

type Repository interface {
	List(ctx context.Context) ([]domain.Movie, error)
	FindByID(ctx context.Context, id domain.ID) (domain.Movie, error)
	Create(ctx context.Context, title, poster string) (domain.Movie, error)
	Update(ctx context.Context, id domain.ID, title, poster string) (domain.Movie, error)
	Delete(ctx context.Context, id domain.ID) (domain.Movie, error)
}
