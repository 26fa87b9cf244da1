package http

import (
	"net/http"
	"time"

	"github.com/openbookings/appointment-backend/internal/pkg/apperror"
	"github.com/openbookings/appointment-backend/internal/pkg/request"
	"github.com/openbookings/appointment-backend/internal/reservation"
)

type CreateBookingRequest struct {
	ContactName  string    `json:"contact_name" binding:"required"`
	ContactEmail string    `json:"contact_email" binding:"required,email"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.EndTime.After(r.StartTime) {
		return apperror.New(http.StatusBadRequest, "ValidationError", "end_time must be after start_time")
	}
	return nil
}

type CancelBookingRequest struct {
	CancelCode string `json:"cancel_code" binding:"required"`
}

type ListBookingsRequest struct {
	request.ListParams
	Status string     `form:"status" binding:"omitempty,oneof=confirmed cancelled"`
	From   *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To     *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// Validate performs custom validation for ListBookingsRequest.
func (r *ListBookingsRequest) Validate() error {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return apperror.New(http.StatusBadRequest, "ValidationError", "from must not be after to")
	}
	return nil
}

type BookingResponse struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	ContactName  string     `json:"contact_name"`
	ContactEmail string     `json:"contact_email"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

func NewBookingResponse(res *reservation.Reservation) BookingResponse {
	return BookingResponse{
		ID:           res.ID,
		OwnerID:      res.OwnerID,
		ContactName:  res.ContactName,
		ContactEmail: res.ContactEmail,
		StartTime:    res.StartTime,
		EndTime:      res.EndTime,
		Status:       string(res.Status),
		CreatedAt:    res.CreatedAt,
		CancelledAt:  res.CancelledAt,
	}
}

// CreatedBookingResponse additionally carries the cancellation code. It is
// returned exactly once, in the creation response; no other endpoint exposes
// the code.
type CreatedBookingResponse struct {
	BookingResponse
	CancelCode string `json:"cancel_code"`
}

func NewCreatedBookingResponse(res *reservation.Reservation) CreatedBookingResponse {
	return CreatedBookingResponse{
		BookingResponse: NewBookingResponse(res),
		CancelCode:      res.CancelCode,
	}
}

type CancelBookingResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	CancelledAt time.Time `json:"cancelled_at"`
}
