package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openbookings/appointment-backend/internal/clock"
	"github.com/openbookings/appointment-backend/internal/localtime"
	"github.com/openbookings/appointment-backend/internal/owner"
	"github.com/openbookings/appointment-backend/internal/policy"
	"github.com/openbookings/appointment-backend/internal/reservation"
)

// ReservationSource supplies the confirmed reservations slot generation
// marks candidates against. reservation.Service satisfies it.
type ReservationSource interface {
	ListConfirmedBetween(ctx context.Context, ownerID string, from, to time.Time) ([]*reservation.Reservation, error)
}

// OwnerDirectory resolves calendar owners. owner.Service satisfies it.
type OwnerDirectory interface {
	GetByID(ctx context.Context, id string) (*owner.Owner, error)
}

type CreateRuleRequest struct {
	OwnerID  string
	Weekday  time.Weekday
	Start    localtime.TimeOfDay
	End      localtime.TimeOfDay
	Interval time.Duration
	Timezone string
}

type SlotQuery struct {
	OwnerID string
	From    localtime.Date
	To      localtime.Date
}

// SlotList carries generated slots plus the reference timezone used to
// render local wall-clock labels.
type SlotList struct {
	Timezone string
	Location *time.Location
	Slots    []Slot
}

type Service interface {
	CreateRule(ctx context.Context, req CreateRuleRequest) (*Rule, error)
	ListRules(ctx context.Context, ownerID string) ([]*Rule, error)
	DeleteRule(ctx context.Context, ownerID, ruleID string) error

	// Slots expands the owner's rules over an inclusive date range and tags
	// each candidate's availability as of now.
	Slots(ctx context.Context, q SlotQuery) (*SlotList, error)
}

type service struct {
	repo         Repository
	reservations ReservationSource
	owners       OwnerDirectory
	clk          clock.Clock
}

func NewService(repo Repository, reservations ReservationSource, owners OwnerDirectory, clk clock.Clock) Service {
	return &service{repo: repo, reservations: reservations, owners: owners, clk: clk}
}

func (s *service) CreateRule(ctx context.Context, req CreateRuleRequest) (*Rule, error) {
	if _, err := localtime.LoadZone(req.Timezone); err != nil {
		return nil, err
	}
	if !req.Start.Before(req.End) {
		return nil, ErrInvalidRuleTimes
	}
	if req.Interval < policy.MinDuration || req.Interval > policy.MaxDuration {
		return nil, policy.ErrDurationOutOfBounds
	}

	rule := &Rule{
		ID:       uuid.NewString(),
		OwnerID:  req.OwnerID,
		Weekday:  req.Weekday,
		Start:    req.Start,
		End:      req.End,
		Interval: req.Interval,
		Timezone: req.Timezone,
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

func (s *service) ListRules(ctx context.Context, ownerID string) ([]*Rule, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) DeleteRule(ctx context.Context, ownerID, ruleID string) error {
	return s.repo.Delete(ctx, ownerID, ruleID)
}

func (s *service) Slots(ctx context.Context, q SlotQuery) (*SlotList, error) {
	if err := ValidateRange(q.From, q.To); err != nil {
		return nil, err
	}
	if _, err := s.owners.GetByID(ctx, q.OwnerID); err != nil {
		return nil, err
	}

	rules, err := s.repo.ListByOwner(ctx, q.OwnerID)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return &SlotList{Timezone: "UTC", Location: time.UTC}, nil
	}

	// Fetch busy intervals over a padded UTC window; a rule timezone far from
	// UTC shifts slots by at most a day. Exactness comes from the per-slot
	// overlap check, not from the fetch bounds.
	windowFrom := localtime.Resolve(q.From, localtime.TimeOfDay{}, time.UTC).Add(-24 * time.Hour)
	windowTo := localtime.Resolve(q.To, localtime.TimeOfDay{}, time.UTC).Add(48 * time.Hour)

	confirmed, err := s.reservations.ListConfirmedBetween(ctx, q.OwnerID, windowFrom, windowTo)
	if err != nil {
		return nil, err
	}

	busy := make([]Interval, 0, len(confirmed))
	for _, res := range confirmed {
		busy = append(busy, Interval{Start: res.StartTime, End: res.EndTime})
	}

	slots, err := GenerateRange(q.From, q.To, rules, busy, s.clk.Now())
	if err != nil {
		return nil, err
	}

	// Local labels render in the first rule's timezone. Owners with rules in
	// mixed zones still get unambiguous UTC instants on every slot.
	loc, err := localtime.LoadZone(rules[0].Timezone)
	if err != nil {
		return nil, err
	}

	return &SlotList{Timezone: rules[0].Timezone, Location: loc, Slots: slots}, nil
}
