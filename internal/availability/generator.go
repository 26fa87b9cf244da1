package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/openbookings/appointment-backend/internal/localtime"
	"github.com/openbookings/appointment-backend/internal/policy"
)

// maxRangeDays caps slot queries at the booking horizon length.
const maxRangeDays = 14

// Slot is one bookable candidate. Start and End are UTC instants; Available
// folds the lead-time, horizon and overlap checks as of generation time.
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// Interval is an occupied [Start, End) span slots are marked against.
type Interval struct {
	Start time.Time
	End   time.Time
}

// ValidateRange checks an inclusive [from, to] slot query range.
func ValidateRange(from, to localtime.Date) error {
	if from.After(to) {
		return ErrInvalidDateRange
	}
	if from.DaysUntil(to) > maxRangeDays {
		return ErrDateRangeTooWide
	}
	return nil
}

// GenerateRange expands the weekly rules over the inclusive date range
// [from, to] and tags each slot as of now. Each calendar day contributes a
// rule's slots when the day's weekday matches; wall-clock times resolve in
// the rule's own timezone, so output instants shift with DST.
//
// Slots are returned sorted by start then end. Rules in different timezones
// may interleave or even overlap each other; overlap between rules only
// matters once a reservation occupies the span.
func GenerateRange(from, to localtime.Date, rules []*Rule, busy []Interval, now time.Time) ([]Slot, error) {
	if err := ValidateRange(from, to); err != nil {
		return nil, err
	}

	byWeekday := make(map[time.Weekday][]*Rule, len(rules))
	for _, rule := range rules {
		byWeekday[rule.Weekday] = append(byWeekday[rule.Weekday], rule)
	}

	zones := make(map[string]*time.Location)

	var slots []Slot
	for d := from; !d.After(to); d = d.AddDays(1) {
		for _, rule := range byWeekday[d.Weekday()] {
			loc, ok := zones[rule.Timezone]
			if !ok {
				var err error
				loc, err = localtime.LoadZone(rule.Timezone)
				if err != nil {
					return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
				}
				zones[rule.Timezone] = loc
			}
			slots = append(slots, expandRule(d, rule, loc, busy, now)...)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Start.Equal(slots[j].Start) {
			return slots[i].End.Before(slots[j].End)
		}
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots, nil
}

// expandRule steps through one rule's window on one calendar day. The window
// boundaries resolve to absolute instants first, so a DST transition inside
// the window shortens or stretches it rather than producing phantom slots; a
// trailing remainder shorter than the interval is dropped. A rule with a
// non-positive interval produces nothing.
func expandRule(d localtime.Date, rule *Rule, loc *time.Location, busy []Interval, now time.Time) []Slot {
	if rule.Interval <= 0 {
		return nil
	}
	windowStart := localtime.Resolve(d, rule.Start, loc)
	windowEnd := localtime.Resolve(d, rule.End, loc)
	if !windowEnd.After(windowStart) {
		// A spring-forward jump can swallow the whole window.
		return nil
	}

	var slots []Slot
	for cursor := windowStart; !cursor.Add(rule.Interval).After(windowEnd); cursor = cursor.Add(rule.Interval) {
		end := cursor.Add(rule.Interval)
		available := policy.MeetsLeadTime(now, cursor) &&
			policy.WithinBookingHorizon(now, cursor) &&
			!overlapsAny(cursor, end, busy)
		slots = append(slots, Slot{Start: cursor, End: end, Available: available})
	}
	return slots
}

// overlapsAny reports whether [start, end) intersects any busy interval.
// Interval endpoints merely touching do not count as overlap.
func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, iv := range busy {
		if start.Before(iv.End) && end.After(iv.Start) {
			return true
		}
	}
	return false
}
