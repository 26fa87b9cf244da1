package owner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing owner accounts in storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Owner, error)
	GetByID(ctx context.Context, id string) (*Owner, error)
	Create(ctx context.Context, o *Owner) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Owner, error) {
	const query = `
		SELECT id, email, password_hash, display_name, is_active, created_at, last_login_at
		FROM public.owners
		WHERE email = $1
	`

	o, err := scanOwner(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get owner by email failed: %w", err)
	}
	return o, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Owner, error) {
	const query = `
		SELECT id, email, password_hash, display_name, is_active, created_at, last_login_at
		FROM public.owners
		WHERE id = $1
	`

	o, err := scanOwner(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get owner by id failed: %w", err)
	}
	return o, nil
}

func (r *pgxRepository) Create(ctx context.Context, o *Owner) error {
	const query = `
		INSERT INTO public.owners (email, password_hash, display_name, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		o.Email,
		o.PasswordHash,
		o.DisplayName,
		o.IsActive,
	).Scan(&o.ID, &o.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create owner failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	const query = `
		UPDATE public.owners
		SET last_login_at = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, t, id)
	if err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanOwner(row pgx.Row) (*Owner, error) {
	var o Owner
	if err := row.Scan(
		&o.ID,
		&o.Email,
		&o.PasswordHash,
		&o.DisplayName,
		&o.IsActive,
		&o.CreatedAt,
		&o.LastLoginAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
