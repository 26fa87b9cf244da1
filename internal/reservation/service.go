package reservation

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/openbookings/appointment-backend/internal/clock"
	"github.com/openbookings/appointment-backend/internal/owner"
	"github.com/openbookings/appointment-backend/internal/policy"
)

// OwnerDirectory resolves calendar owners before bookings are taken against
// them. owner.Service satisfies it.
type OwnerDirectory interface {
	GetByID(ctx context.Context, id string) (*owner.Owner, error)
}

// BookRequest carries the input for booking a slot. StartTime and EndTime are
// absolute instants matching a generated candidate; wall-clock input is not
// accepted here.
type BookRequest struct {
	OwnerID      string
	ContactName  string
	ContactEmail string
	StartTime    time.Time
	EndTime      time.Time
}

type Service interface {
	Book(ctx context.Context, req BookRequest) (*Reservation, error)

	// Cancel voids a confirmed reservation and returns the cancellation
	// instant. The caller must present the code issued at booking time.
	Cancel(ctx context.Context, publicID, cancelCode string) (time.Time, error)

	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	ListConfirmedBetween(ctx context.Context, ownerID string, from, to time.Time) ([]*Reservation, error)
}

type service struct {
	repo   Repository
	owners OwnerDirectory
	codes  CodeGenerator
	clk    clock.Clock
	log    *slog.Logger
}

func NewService(repo Repository, owners OwnerDirectory, codes CodeGenerator, clk clock.Clock, log *slog.Logger) Service {
	return &service{repo: repo, owners: owners, codes: codes, clk: clk, log: log}
}

func (s *service) Book(ctx context.Context, req BookRequest) (*Reservation, error) {
	if _, err := s.owners.GetByID(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	start := req.StartTime.UTC()
	end := req.EndTime.UTC()

	if err := policy.CheckBookable(s.clk.Now(), start, end); err != nil {
		return nil, err
	}

	code, err := s.codes.NewCode()
	if err != nil {
		return nil, fmt.Errorf("new cancellation code failed: %w", err)
	}

	res := &Reservation{
		ID:           uuid.NewString(),
		OwnerID:      req.OwnerID,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		CancelCode:   code,
		StartTime:    start,
		EndTime:      end,
		Status:       StatusConfirmed,
	}

	if err := s.repo.InsertIfNoOverlap(ctx, res); err != nil {
		if errors.Is(err, ErrSlotAlreadyBooked) {
			s.log.Warn("booking rejected by overlap check",
				"owner_id", req.OwnerID,
				"start_time", start,
				"end_time", end,
			)
		}
		return nil, err
	}

	return res, nil
}

func (s *service) Cancel(ctx context.Context, publicID, cancelCode string) (time.Time, error) {
	res, err := s.repo.GetByPublicID(ctx, publicID)
	if err != nil {
		return time.Time{}, err
	}

	if res.Status == StatusCancelled {
		return time.Time{}, ErrAlreadyCancelled
	}

	// Exact, case-sensitive match. The response only says the code was
	// wrong; the log keeps which reservation was involved.
	if subtle.ConstantTimeCompare([]byte(res.CancelCode), []byte(cancelCode)) != 1 {
		s.log.Warn("cancellation code mismatch", "reservation_id", publicID)
		return time.Time{}, ErrInvalidCancelCode
	}

	now := s.clk.Now()
	if !policy.MeetsCancellationNotice(now, res.StartTime) {
		return time.Time{}, ErrTooLateToCancel
	}

	// Guarded update: a concurrent cancel that won the race surfaces here as
	// ErrAlreadyCancelled.
	if err := s.repo.MarkCancelled(ctx, publicID, now); err != nil {
		return time.Time{}, err
	}

	return now, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListConfirmedBetween(ctx context.Context, ownerID string, from, to time.Time) ([]*Reservation, error) {
	return s.repo.ListConfirmedBetween(ctx, ownerID, from, to)
}
