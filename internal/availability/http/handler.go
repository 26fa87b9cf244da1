package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbookings/appointment-backend/internal/auth"
	"github.com/openbookings/appointment-backend/internal/availability"
	"github.com/openbookings/appointment-backend/internal/localtime"
	"github.com/openbookings/appointment-backend/internal/pkg/request"
	"github.com/openbookings/appointment-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// CreateRule adds a weekly availability window for the authenticated owner.
func (h *Handler) CreateRule(c *gin.Context) {
	ownerID := auth.GetOwnerID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body CreateRuleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	start, err := localtime.ParseTimeOfDay(body.StartTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := localtime.ParseTimeOfDay(body.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	rule, err := h.service.CreateRule(c.Request.Context(), availability.CreateRuleRequest{
		OwnerID:  ownerID,
		Weekday:  time.Weekday(*body.Weekday),
		Start:    start,
		End:      end,
		Interval: time.Duration(body.IntervalMinutes) * time.Minute,
		Timezone: body.Timezone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRuleResponse(rule))
}

// ListRules returns the authenticated owner's rules ordered by weekday.
func (h *Handler) ListRules(c *gin.Context) {
	ownerID := auth.GetOwnerID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rules, err := h.service.ListRules(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		items = append(items, NewRuleResponse(rule))
	}

	c.JSON(http.StatusOK, items)
}

// DeleteRule removes one of the authenticated owner's rules. Existing
// reservations are untouched; only future slot generation changes.
func (h *Handler) DeleteRule(c *gin.Context) {
	ownerID := auth.GetOwnerID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id", "details": err.Error()})
		return
	}

	if err := h.service.DeleteRule(c.Request.Context(), ownerID, uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Slots exposes an owner's bookable calendar. Public: this is what booking
// pages render. Unavailable candidates are omitted unless all=true.
func (h *Handler) Slots(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner id", "details": err.Error()})
		return
	}

	var query ListSlotsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	from, err := localtime.ParseDate(query.From)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := localtime.ParseDate(query.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.service.Slots(c.Request.Context(), availability.SlotQuery{
		OwnerID: uri.ID,
		From:    from,
		To:      to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SlotResponse, 0, len(list.Slots))
	for _, slot := range list.Slots {
		if !slot.Available && !query.All {
			continue
		}
		items = append(items, NewSlotResponse(slot, list.Location))
	}

	c.JSON(http.StatusOK, SlotListResponse{Timezone: list.Timezone, Slots: items})
}
