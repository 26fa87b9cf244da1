package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestMeetsLeadTime(t *testing.T) {
	assert.True(t, MeetsLeadTime(now, now.Add(LeadTime+time.Second)), "one second past the threshold qualifies")
	assert.False(t, MeetsLeadTime(now, now.Add(LeadTime)), "exactly at the threshold is too short")
	assert.False(t, MeetsLeadTime(now, now.Add(LeadTime-time.Minute)))
	assert.False(t, MeetsLeadTime(now, now.Add(-time.Hour)), "past starts never qualify")
}

func TestWithinBookingHorizon(t *testing.T) {
	assert.True(t, WithinBookingHorizon(now, now.Add(BookingHorizon-time.Minute)))
	assert.False(t, WithinBookingHorizon(now, now.Add(BookingHorizon)), "exactly at the horizon is out")
	assert.False(t, WithinBookingHorizon(now, now.Add(BookingHorizon+time.Minute)))
}

func TestMeetsCancellationNotice(t *testing.T) {
	assert.True(t, MeetsCancellationNotice(now, now.Add(CancellationNotice+time.Minute)))
	assert.False(t, MeetsCancellationNotice(now, now.Add(CancellationNotice)), "exactly at the threshold is too late")
	assert.False(t, MeetsCancellationNotice(now, now.Add(CancellationNotice-time.Minute)))
}

func TestValidateDuration(t *testing.T) {
	start := now

	assert.NoError(t, ValidateDuration(start, start.Add(MinDuration)))
	assert.NoError(t, ValidateDuration(start, start.Add(MaxDuration)))
	assert.NoError(t, ValidateDuration(start, start.Add(time.Hour)))

	assert.ErrorIs(t, ValidateDuration(start, start.Add(MinDuration-time.Second)), ErrDurationOutOfBounds, "a second under the minimum")
	assert.ErrorIs(t, ValidateDuration(start, start.Add(MaxDuration+time.Minute)), ErrDurationOutOfBounds)
	assert.ErrorIs(t, ValidateDuration(start, start), ErrDurationOutOfBounds, "zero-length interval")
	assert.ErrorIs(t, ValidateDuration(start, start.Add(-time.Hour)), ErrDurationOutOfBounds, "inverted interval")
}

func TestCheckBookable(t *testing.T) {
	t.Run("Passes", func(t *testing.T) {
		start := now.Add(3 * time.Hour)
		assert.NoError(t, CheckBookable(now, start, start.Add(time.Hour)))
	})

	t.Run("Duration Checked First", func(t *testing.T) {
		// A start in the past with a bad duration reports the duration.
		start := now.Add(-time.Hour)
		assert.ErrorIs(t, CheckBookable(now, start, start.Add(5*time.Minute)), ErrDurationOutOfBounds)
	})

	t.Run("Lead Time", func(t *testing.T) {
		start := now.Add(time.Hour)
		assert.ErrorIs(t, CheckBookable(now, start, start.Add(time.Hour)), ErrLeadTimeTooShort)
	})

	t.Run("Horizon", func(t *testing.T) {
		start := now.Add(BookingHorizon + time.Hour)
		assert.ErrorIs(t, CheckBookable(now, start, start.Add(time.Hour)), ErrHorizonExceeded)
	})
}
