package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	commondb "github.com/AlibekovAA/movie-watchlist/internal/common/db"
	commonsqlite "github.com/AlibekovAA/movie-watchlist/internal/common/sqlite"
	"github.com/AlibekovAA/movie-watchlist/internal/movie/domain"
)

var _ Repository = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db  *commonsqlite.DB
	now func() time.Time
}

func NewSQLiteRepository(db *commonsqlite.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) List(ctx context.Context) (movies []domain.Movie, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverSQLite, table, "list", start, err)
	}()

	rows, err := r.db.Reader.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies = []domain.Movie{}
	for rows.Next() {
		m, err := scanSQLiteMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	return movies, nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id domain.ID) (movie domain.Movie, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverSQLite, table, "find_by_id", start, err, ErrMovieNotFound)
	}()

	return r.findWith(ctx, r.db.Reader, id)
}

func (r *SQLiteRepository) Create(ctx context.Context, title, poster string) (movie domain.Movie, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverSQLite, table, "create", start, err)
	}()

	const query = `
		INSERT INTO movies (title, poster, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	now := r.now().UTC()
	stamp := commonsqlite.FormatTime(now)
	res, err := r.db.Writer.ExecContext(ctx, query, title, poster, stamp, stamp)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("insert movie: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Movie{}, fmt.Errorf("get last insert id: %w", err)
	}

	return domain.Movie{
		ID:        domain.ID(id),
		Title:     title,
		Poster:    poster,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id domain.ID, title, poster string) (movie domain.Movie, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverSQLite, table, "update", start, err, ErrMovieNotFound)
	}()

	const query = `
		UPDATE movies SET title = ?, poster = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := r.db.Writer.ExecContext(ctx, query, title, poster, commonsqlite.FormatTime(r.now()), int64(id))
	if err != nil {
		return domain.Movie{}, fmt.Errorf("update movie %d: %w", id, err)
	}
	if err := requireAffected(res); err != nil {
		return domain.Movie{}, err
	}

	return r.findWith(ctx, r.db.Writer, id)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id domain.ID) (movie domain.Movie, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverSQLite, table, "delete", start, err, ErrMovieNotFound)
	}()

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	movie, err = scanSQLiteMovie(tx.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, int64(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, ErrMovieNotFound
	}
	if err != nil {
		return domain.Movie{}, fmt.Errorf("find movie %d: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, int64(id)); err != nil {
		return domain.Movie{}, fmt.Errorf("delete movie %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Movie{}, fmt.Errorf("commit delete: %w", err)
	}

	return movie, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *SQLiteRepository) findWith(ctx context.Context, q queryRower, id domain.ID) (domain.Movie, error) {
	movie, err := scanSQLiteMovie(q.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, int64(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, ErrMovieNotFound
	}
	if err != nil {
		return domain.Movie{}, fmt.Errorf("find movie %d: %w", id, err)
	}
	return movie, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

func scanSQLiteMovie(row rowScanner) (domain.Movie, error) {
	var (
		m                    domain.Movie
		createdAt, updatedAt string
	)

	if err := row.Scan(&m.ID, &m.Title, &m.Poster, &createdAt, &updatedAt); err != nil {
		return domain.Movie{}, err
	}

	var err error
	if m.CreatedAt, err = commonsqlite.ParseTime(createdAt); err != nil {
		return domain.Movie{}, fmt.Errorf("parse created_at: %w", err)
	}
	if m.UpdatedAt, err = commonsqlite.ParseTime(updatedAt); err != nil {
		return domain.Movie{}, fmt.Errorf("parse updated_at: %w", err)
	}

	return m, nil
}
