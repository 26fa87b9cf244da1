package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbookings/appointment-backend/internal/auth"
	"github.com/openbookings/appointment-backend/internal/pkg/request"
	"github.com/openbookings/appointment-backend/internal/pkg/response"
	"github.com/openbookings/appointment-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

// Create books a slot on an owner's calendar. Public: bookers do not
// authenticate, they receive a single-use cancellation code instead.
func (h *Handler) Create(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner id", "details": err.Error()})
		return
	}

	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.Book(c.Request.Context(), reservation.BookRequest{
		OwnerID:      uri.ID,
		ContactName:  body.ContactName,
		ContactEmail: body.ContactEmail,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCreatedBookingResponse(res))
}

// Cancel voids a reservation. Public: the cancellation code in the body is
// the sole credential.
func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id", "details": err.Error()})
		return
	}

	var body CancelBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cancelledAt, err := h.service.Cancel(c.Request.Context(), uri.ID, body.CancelCode)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CancelBookingResponse{
		ID:          uri.ID,
		Status:      string(reservation.StatusCancelled),
		CancelledAt: cancelledAt,
	})
}

// List returns the authenticated owner's reservations ordered by start time.
func (h *Handler) List(c *gin.Context) {
	ownerID := auth.GetOwnerID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := query.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	reservations, total, err := h.service.List(c.Request.Context(), reservation.Filter{
		OwnerID:  ownerID,
		Status:   query.Status,
		From:     query.From,
		To:       query.To,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, 0, len(reservations))
	for _, res := range reservations {
		items = append(items, NewBookingResponse(res))
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, query.Page, query.PageSize, total))
}
