package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	commondb "github.com/AlibekovAA/movie-watchlist/internal/common/db"
	"github.com/AlibekovAA/movie-watchlist/internal/movie/domain"
)

var _ Repository = (*PgRepository)(nil)

const movieColumns = `id, title, poster, created_at, updated_at`

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) List(ctx context.Context) (movies []domain.Movie, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverPostgres, table, "list", start, err)
	}()

	rows, err := r.pool.Query(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	movies = []domain.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, m)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return movies, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (movie domain.Movie, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverPostgres, table, "find_by_id", start, err, ErrMovieNotFound)
	}()

	row := r.pool.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, int64(id))
	return r.one(row, "find movie by id")
}

func (r *PgRepository) Create(ctx context.Context, title, poster string) (movie domain.Movie, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverPostgres, table, "create", start, err)
	}()

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO movies (title, poster) VALUES ($1, $2) RETURNING `+movieColumns,
		title,
		poster,
	)

	movie, err = scanMovie(row)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("failed to create movie: %w", err)
	}
	return movie, nil
}

func (r *PgRepository) Update(ctx context.Context, id domain.ID, title, poster string) (movie domain.Movie, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverPostgres, table, "update", start, err, ErrMovieNotFound)
	}()

	row := r.pool.QueryRow(
		ctx,
		`UPDATE movies SET title = $2, poster = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+movieColumns,
		int64(id),
		title,
		poster,
	)
	return r.one(row, "update movie")
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) (movie domain.Movie, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverPostgres, table, "delete", start, err, ErrMovieNotFound)
	}()

	row := r.pool.QueryRow(ctx, `DELETE FROM movies WHERE id = $1 RETURNING `+movieColumns, int64(id))
	return r.one(row, "delete movie")
}

func (r *PgRepository) one(row pgx.Row, op string) (domain.Movie, error) {
	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrMovieNotFound
		}
		return domain.Movie{}, fmt.Errorf("failed to %s: %w", op, err)
	}
	return movie, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Poster, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}
