package http

import (
	"time"

	"github.com/openbookings/appointment-backend/internal/availability"
	"github.com/openbookings/appointment-backend/internal/localtime"
)

type CreateRuleRequest struct {
	Weekday         *int   `json:"weekday" binding:"required,min=0,max=6"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	IntervalMinutes int    `json:"interval_minutes" binding:"required,min=1"`
	Timezone        string `json:"timezone" binding:"required"`
}

type RuleResponse struct {
	ID              string    `json:"id"`
	Weekday         int       `json:"weekday"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	IntervalMinutes int       `json:"interval_minutes"`
	Timezone        string    `json:"timezone"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewRuleResponse(rule *availability.Rule) RuleResponse {
	return RuleResponse{
		ID:              rule.ID,
		Weekday:         int(rule.Weekday),
		StartTime:       rule.Start.String(),
		EndTime:         rule.End.String(),
		IntervalMinutes: int(rule.Interval / time.Minute),
		Timezone:        rule.Timezone,
		CreatedAt:       rule.CreatedAt,
	}
}

type ListSlotsRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
	All  bool   `form:"all"`
}

type SlotResponse struct {
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	StartLocal string    `json:"start_local"`
	EndLocal   string    `json:"end_local"`
	Available  bool      `json:"available"`
}

func NewSlotResponse(slot availability.Slot, loc *time.Location) SlotResponse {
	return SlotResponse{
		StartTime:  slot.Start,
		EndTime:    slot.End,
		StartLocal: localtime.FormatClock(slot.Start, loc),
		EndLocal:   localtime.FormatClock(slot.End, loc),
		Available:  slot.Available,
	}
}

type SlotListResponse struct {
	Timezone string         `json:"timezone"`
	Slots    []SlotResponse `json:"slots"`
}
