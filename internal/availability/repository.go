package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbookings/appointment-backend/internal/localtime"
)

type Repository interface {
	Create(ctx context.Context, rule *Rule) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Rule, error)

	// Delete removes the owner's rule. Rules belonging to someone else are
	// indistinguishable from missing ones.
	Delete(ctx context.Context, ownerID, ruleID string) error
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

func (r *pgxRepository) Create(ctx context.Context, rule *Rule) error {
	query, args, err := r.sb.
		Insert("public.availability_rules").
		Columns("id", "owner_id", "weekday", "start_sec", "end_sec", "interval_minutes", "timezone").
		Values(
			rule.ID,
			rule.OwnerID,
			int(rule.Weekday),
			rule.Start.SecondsFromMidnight(),
			rule.End.SecondsFromMidnight(),
			int(rule.Interval/time.Minute),
			rule.Timezone,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert rule query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rule.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrRuleAlreadyExists
		}
		return fmt.Errorf("insert availability rule failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Rule, error) {
	query, args, err := r.sb.
		Select("id", "owner_id", "weekday", "start_sec", "end_sec", "interval_minutes", "timezone", "created_at").
		From("public.availability_rules").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query availability rules failed: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		var (
			rule             Rule
			weekday          int
			startSec, endSec int
			intervalMinutes  int
		)
		if err := rows.Scan(
			&rule.ID, &rule.OwnerID, &weekday, &startSec, &endSec, &intervalMinutes,
			&rule.Timezone, &rule.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rule row failed: %w", err)
		}
		rule.Weekday = time.Weekday(weekday)
		rule.Start = localtime.FromSeconds(startSec)
		rule.End = localtime.FromSeconds(endSec)
		rule.Interval = time.Duration(intervalMinutes) * time.Minute
		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rule rows failed: %w", err)
	}

	return rules, nil
}

func (r *pgxRepository) Delete(ctx context.Context, ownerID, ruleID string) error {
	query, args, err := r.sb.
		Delete("public.availability_rules").
		Where(squirrel.Eq{"id": ruleID, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete rule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete availability rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRuleNotFound
	}

	return nil
}
