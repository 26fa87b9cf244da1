package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByPublicID(ctx context.Context, publicID string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	ListConfirmedBetween(ctx context.Context, ownerID string, from, to time.Time) ([]*Reservation, error)

	// InsertIfNoOverlap atomically checks the owner's confirmed reservations
	// for an overlap with [r.StartTime, r.EndTime) and inserts only when the
	// interval is clear. Returns ErrSlotAlreadyBooked on conflict.
	InsertIfNoOverlap(ctx context.Context, r *Reservation) error

	// MarkCancelled flips a confirmed reservation to cancelled. Returns
	// ErrAlreadyCancelled when the row is no longer confirmed.
	MarkCancelled(ctx context.Context, publicID string, at time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const reservationColumns = `id, owner_id, contact_name, contact_email, cancel_code, start_time, end_time, status, created_at, cancelled_at`

func (r *pgxRepository) GetByPublicID(ctx context.Context, publicID string) (*Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM public.reservations
		WHERE id = $1
	`

	res, err := scanReservation(r.pool.QueryRow(ctx, query, publicID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query reservation by id failed: %w", err)
	}

	return res, nil
}

func (r *pgxRepository) buildListQuery(filter Filter) (string, []any, error) {
	builder := r.sb.
		Select(
			"id", "owner_id", "contact_name", "contact_email", "cancel_code",
			"start_time", "end_time", "status", "created_at", "cancelled_at",
			"count(*) OVER() AS total_count",
		).
		From("public.reservations").
		Where(squirrel.Eq{"owner_id": filter.OwnerID})

	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"status": filter.Status})
	}
	// Intersection semantics: a reservation matches when its interval touches
	// the requested window.
	if filter.From != nil {
		builder = builder.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	builder = builder.OrderBy("start_time ASC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	builder = builder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	return builder.ToSql()
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	query, args, err := r.buildListQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query reservations failed: %w", err)
	}
	defer rows.Close()

	var (
		reservations []*Reservation
		total        int
	)
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(
			&res.ID, &res.OwnerID, &res.ContactName, &res.ContactEmail, &res.CancelCode,
			&res.StartTime, &res.EndTime, &res.Status, &res.CreatedAt, &res.CancelledAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan reservation row failed: %w", err)
		}
		reservations = append(reservations, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reservation rows failed: %w", err)
	}

	return reservations, total, nil
}

func (r *pgxRepository) ListConfirmedBetween(ctx context.Context, ownerID string, from, to time.Time) ([]*Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM public.reservations
		WHERE owner_id = $1
		  AND status = 'confirmed'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time ASC
	`

	rows, err := r.pool.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query confirmed reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(
			&res.ID, &res.OwnerID, &res.ContactName, &res.ContactEmail, &res.CancelCode,
			&res.StartTime, &res.EndTime, &res.Status, &res.CreatedAt, &res.CancelledAt,
		); err != nil {
			return nil, fmt.Errorf("scan reservation row failed: %w", err)
		}
		reservations = append(reservations, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation rows failed: %w", err)
	}

	return reservations, nil
}

func (r *pgxRepository) InsertIfNoOverlap(ctx context.Context, res *Reservation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock an overlapping confirmed row if one exists. A conflict against an
	// existing reservation rejects here; two inserts racing on a clear
	// calendar find nothing to lock, and the exclusion constraint on the
	// table settles that race at insert time.
	lockQuery := `
		SELECT id
		FROM public.reservations
		WHERE owner_id = $1
		  AND status = 'confirmed'
		  AND start_time < $3
		  AND end_time > $2
		LIMIT 1
		FOR UPDATE
	`

	var conflictID string
	err = tx.QueryRow(ctx, lockQuery, res.OwnerID, res.StartTime, res.EndTime).Scan(&conflictID)
	switch {
	case err == nil:
		return ErrSlotAlreadyBooked
	case !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("lock overlapping reservations failed: %w", err)
	}

	insertQuery := `
		INSERT INTO public.reservations
			(id, owner_id, contact_name, contact_email, cancel_code, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	if err := tx.QueryRow(ctx, insertQuery,
		res.ID, res.OwnerID, res.ContactName, res.ContactEmail, res.CancelCode,
		res.StartTime, res.EndTime, res.Status,
	).Scan(&res.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrSlotAlreadyBooked
		}
		return fmt.Errorf("insert reservation failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking tx failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) MarkCancelled(ctx context.Context, publicID string, at time.Time) error {
	query := `
		UPDATE public.reservations
		SET status = 'cancelled', cancelled_at = $2
		WHERE id = $1 AND status = 'confirmed'
	`

	ct, err := r.pool.Exec(ctx, query, publicID, at)
	if err != nil {
		return fmt.Errorf("cancel reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrAlreadyCancelled
	}

	return nil
}

func scanReservation(row pgx.Row) (*Reservation, error) {
	var res Reservation
	if err := row.Scan(
		&res.ID, &res.OwnerID, &res.ContactName, &res.ContactEmail, &res.CancelCode,
		&res.StartTime, &res.EndTime, &res.Status, &res.CreatedAt, &res.CancelledAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}
