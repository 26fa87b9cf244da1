package reservation

import (
	"net/http"
	"time"

	"github.com/openbookings/appointment-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "ReservationNotFound", "reservation not found")
	ErrSlotAlreadyBooked = apperror.New(http.StatusConflict, "SlotAlreadyBooked", "time slot already booked")
	ErrAlreadyCancelled  = apperror.New(http.StatusConflict, "AlreadyCancelled", "reservation is already cancelled")
	ErrTooLateToCancel   = apperror.New(http.StatusConflict, "TooLateToCancel", "reservations can only be cancelled more than 12 hours before they start")
	ErrInvalidCancelCode = apperror.New(http.StatusForbidden, "InvalidCancelCode", "invalid cancellation code")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Reservation is a committed booking occupying an interval on an owner's
// calendar. Instants are stored in UTC and intervals are half-open
// [StartTime, EndTime). Status moves confirmed -> cancelled exactly once and
// never back; rows are never deleted.
type Reservation struct {
	ID           string // public UUID
	OwnerID      string
	ContactName  string
	ContactEmail string
	CancelCode   string
	StartTime    time.Time
	EndTime      time.Time
	Status       Status
	CreatedAt    time.Time
	CancelledAt  *time.Time
}

// Filter defines filter options for listing an owner's reservations.
type Filter struct {
	OwnerID  string
	Status   string
	From     *time.Time // reservations ending after this instant
	To       *time.Time // reservations starting before this instant
	Page     int
	PageSize int
}
