package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	commondb "github.com/AlibekovAA/movie-watchlist/internal/common/db"
	commonsqlite "github.com/AlibekovAA/movie-watchlist/internal/common/sqlite"
	"github.com/AlibekovAA/movie-watchlist/internal/user/domain"
)

var _ Repository = (*SQLiteRepository)(nil)

// SQLiteRepository reads through the reader pool and writes through the
// single writer connection. Timestamps are set here in UTC.
type SQLiteRepository struct {
	db  *commonsqlite.DB
	now func() time.Time
}

func NewSQLiteRepository(db *commonsqlite.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (user domain.User, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverSQLite, table, "find_by_email_or_username", start, err, ErrUserNotFound)
	}()

	const query = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = ? OR username = ?
		ORDER BY id
		LIMIT 1
	`

	user, err = scanSQLiteUser(r.db.Reader.QueryRowContext(ctx, query, email, username))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("find user by email or username: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) FindByEmail(ctx context.Context, email string) (user domain.User, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverSQLite, table, "find_by_email", start, err, ErrUserNotFound)
	}()

	const query = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = ?
	`

	user, err = scanSQLiteUser(r.db.Reader.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("find user by email: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, username, email, passwordHash string) (user domain.User, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverSQLite, table, "create", start, err, ErrUserAlreadyExists)
	}()

	const query = `
		INSERT INTO users (username, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	now := r.now().UTC()
	stamp := commonsqlite.FormatTime(now)
	res, err := r.db.Writer.ExecContext(ctx, query, username, email, passwordHash, stamp, stamp)
	if err != nil {
		if commonsqlite.IsUniqueViolation(err) {
			return domain.User{}, ErrUserAlreadyExists
		}
		return domain.User{}, fmt.Errorf("insert user %s: %w", username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, fmt.Errorf("get last insert id: %w", err)
	}

	return domain.User{
		ID:           domain.ID(id),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (r *SQLiteRepository) List(ctx context.Context) (users []domain.Summary, err error) {
	start := time.Now()
	defer func() {
		commondb.ObserveQuery(commondb.DriverSQLite, table, "list", start, err)
	}()

	const query = `
		SELECT id, username, email, created_at, updated_at
		FROM users
		ORDER BY id ASC
	`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users = []domain.Summary{}
	for rows.Next() {
		var (
			u                    domain.Summary
			createdAt, updatedAt string
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if u.CreatedAt, err = commonsqlite.ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		if u.UpdatedAt, err = commonsqlite.ParseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func scanSQLiteUser(row rowScanner) (domain.User, error) {
	var (
		u                    domain.User
		createdAt, updatedAt string
	)

	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, err
	}

	if u.CreatedAt, err = commonsqlite.ParseTime(createdAt); err != nil {
		return domain.User{}, fmt.Errorf("parse created_at: %w", err)
	}
	if u.UpdatedAt, err = commonsqlite.ParseTime(updatedAt); err != nil {
		return domain.User{}, fmt.Errorf("parse updated_at: %w", err)
	}

	return u, nil
}
