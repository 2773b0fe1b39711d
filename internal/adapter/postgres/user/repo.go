// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/conceptdost/conceptdost-backend/internal/adapter/postgres"
	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

const getByIDSQL = `
SELECT id, email, username, password_hash, created_at, updated_at
FROM users
WHERE id = $1`

const getByEmailSQL = `
SELECT id, email, username, password_hash, created_at, updated_at
FROM users
WHERE email = $1`

const createSQL = `
INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

const deleteSQL = `
DELETE FROM users
WHERE id = $1`

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var u domain.User
	err := querier.QueryRow(ctx, getByIDSQL, id).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return &u, nil
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var u domain.User
	err := querier.QueryRow(ctx, getByEmailSQL, email).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return &u, nil
}

// Create inserts a new user. Email and username uniqueness are enforced by
// DB constraints and surface as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createSQL,
		u.ID, u.Email, u.Username, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "user", u.ID)
	}

	return nil
}

// Delete removes a user. Owned collections (history, saved cards, refresh
// tokens) are removed by ON DELETE CASCADE in the same statement.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
