package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	commondb "github.com/AlibekovAA/movie-watchlist/internal/common/db"
	"github.com/AlibekovAA/movie-watchlist/internal/user/domain"
)

var _ Repository = (*PgRepository)(nil)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (user domain.User, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverPostgres, table, "find_by_email_or_username", start, err, ErrUserNotFound)
	}()

	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users
		 WHERE email = $1 OR username = $2
		 ORDER BY id
		 LIMIT 1`,
		email,
		username,
	)

	user, err = scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to find user by email or username: %w", err)
	}

	return user, nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (user domain.User, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverPostgres, table, "find_by_email", start, err, ErrUserNotFound)
	}()

	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users
		 WHERE email = $1`,
		email,
	)

	user, err = scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to find user by email: %w", err)
	}

	return user, nil
}

func (r *PgRepository) Create(ctx context.Context, username, email, passwordHash string) (user domain.User, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverPostgres, table, "create", start, err, ErrUserAlreadyExists)
	}()

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, username, email, password_hash, created_at, updated_at`,
		username,
		email,
		passwordHash,
	)

	user, err = scanUser(row)
	if err != nil {
		if commondb.IsUniqueViolation(err) {
			return domain.User{}, ErrUserAlreadyExists
		}
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *PgRepository) List(ctx context.Context) (users []domain.Summary, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverPostgres, table, "list", start, err)
	}()

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, username, email, created_at, updated_at
		 FROM users
		 ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users = []domain.Summary{}
	for rows.Next() {
		var u domain.Summary
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
