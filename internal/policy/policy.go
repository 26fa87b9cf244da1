package policy

import (
	"net/http"
	"time"

	"github.com/openbookings/appointment-backend/internal/pkg/apperror"
)

// Booking thresholds. These are business rules, not configuration; every
// comparison against them is strict, never inclusive, and never clamped.
const (
	LeadTime           = 2 * time.Hour
	BookingHorizon     = 14 * 24 * time.Hour
	CancellationNotice = 12 * time.Hour
	MinDuration        = 15 * time.Minute
	MaxDuration        = 480 * time.Minute
)

var (
	ErrLeadTimeTooShort    = apperror.New(http.StatusBadRequest, "LeadTimeTooShort", "start time must be more than 2 hours from now")
	ErrHorizonExceeded     = apperror.New(http.StatusBadRequest, "HorizonExceeded", "start time must be less than 14 days from now")
	ErrDurationOutOfBounds = apperror.New(http.StatusBadRequest, "DurationOutOfBounds", "duration must be between 15 and 480 minutes")
)

// MeetsLeadTime reports whether start is strictly after now + LeadTime.
func MeetsLeadTime(now, start time.Time) bool {
	return start.After(now.Add(LeadTime))
}

// WithinBookingHorizon reports whether start is strictly before now + BookingHorizon.
func WithinBookingHorizon(now, start time.Time) bool {
	return start.Before(now.Add(BookingHorizon))
}

// MeetsCancellationNotice reports whether start is strictly after now + CancellationNotice.
func MeetsCancellationNotice(now, start time.Time) bool {
	return start.After(now.Add(CancellationNotice))
}

// ValidateDuration checks that end is strictly after start and that the span
// is within [MinDuration, MaxDuration].
func ValidateDuration(start, end time.Time) error {
	if !end.After(start) {
		return ErrDurationOutOfBounds
	}
	if d := end.Sub(start); d < MinDuration || d > MaxDuration {
		return ErrDurationOutOfBounds
	}
	return nil
}

// CheckBookable runs every policy gate a new booking must pass, in order:
// duration bounds, lead time, horizon. The first violation is returned.
func CheckBookable(now, start, end time.Time) error {
	if err := ValidateDuration(start, end); err != nil {
		return err
	}
	if !MeetsLeadTime(now, start) {
		return ErrLeadTimeTooShort
	}
	if !WithinBookingHorizon(now, start) {
		return ErrHorizonExceeded
	}
	return nil
}
