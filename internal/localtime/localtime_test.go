package localtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		cases := []struct {
			in   string
			want TimeOfDay
		}{
			{"00:00", TimeOfDay{}},
			{"09:30", TimeOfDay{Hour: 9, Minute: 30}},
			{"23:59", TimeOfDay{Hour: 23, Minute: 59}},
			{"17:15:30", TimeOfDay{Hour: 17, Minute: 15, Second: 30}},
		}
		for _, tc := range cases {
			got, err := ParseTimeOfDay(tc.in)
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got, tc.in)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, in := range []string{"", "noon", "24:00", "12:60", "12", "12:34:56:78"} {
			_, err := ParseTimeOfDay(in)
			assert.ErrorIs(t, err, ErrInvalidTimeSpec, in)
		}
	})
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:05", TimeOfDay{Hour: 9, Minute: 5}.String())
	assert.Equal(t, "09:05:30", TimeOfDay{Hour: 9, Minute: 5, Second: 30}.String())
}

func TestTimeOfDaySeconds(t *testing.T) {
	cases := []TimeOfDay{
		{},
		{Hour: 9, Minute: 30},
		{Hour: 23, Minute: 59, Second: 59},
	}
	for _, tc := range cases {
		assert.Equal(t, tc, FromSeconds(tc.SecondsFromMidnight()), tc.String())
	}
	assert.Equal(t, 34200, TimeOfDay{Hour: 9, Minute: 30}.SecondsFromMidnight())
}

func TestTimeOfDayBefore(t *testing.T) {
	assert.True(t, TimeOfDay{Hour: 9}.Before(TimeOfDay{Hour: 17}))
	assert.False(t, TimeOfDay{Hour: 17}.Before(TimeOfDay{Hour: 9}))
	assert.False(t, TimeOfDay{Hour: 9}.Before(TimeOfDay{Hour: 9}))
}

func TestParseDate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		got, err := ParseDate("2025-01-06")
		require.NoError(t, err)
		assert.Equal(t, Date{Year: 2025, Month: time.January, Day: 6}, got)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, in := range []string{"", "06-01-2025", "2025-13-01", "2025-02-30", "2025-1-6"} {
			_, err := ParseDate(in)
			assert.ErrorIs(t, err, ErrInvalidDate, in)
		}
	})
}

func TestDateArithmetic(t *testing.T) {
	t.Run("Weekday", func(t *testing.T) {
		assert.Equal(t, time.Monday, Date{Year: 2025, Month: time.January, Day: 6}.Weekday())
		assert.Equal(t, time.Sunday, Date{Year: 2025, Month: time.January, Day: 5}.Weekday())
	})

	t.Run("AddDays", func(t *testing.T) {
		d := Date{Year: 2024, Month: time.December, Day: 31}
		assert.Equal(t, Date{Year: 2025, Month: time.January, Day: 1}, d.AddDays(1))
		assert.Equal(t, d, d.AddDays(0))
	})

	t.Run("DaysUntil", func(t *testing.T) {
		from := Date{Year: 2025, Month: time.January, Day: 6}
		to := Date{Year: 2025, Month: time.January, Day: 20}
		assert.Equal(t, 14, from.DaysUntil(to))
		assert.Equal(t, 0, from.DaysUntil(from))
		assert.Equal(t, -14, to.DaysUntil(from))
	})

	t.Run("After", func(t *testing.T) {
		earlier := Date{Year: 2025, Month: time.March, Day: 1}
		later := Date{Year: 2025, Month: time.March, Day: 2}
		assert.True(t, later.After(earlier))
		assert.False(t, earlier.After(later))
		assert.False(t, earlier.After(earlier))
	})
}

func TestLoadZone(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		for _, name := range []string{"UTC", "America/New_York", "Asia/Taipei"} {
			loc, err := LoadZone(name)
			require.NoError(t, err, name)
			assert.Equal(t, name, loc.String())
		}
	})

	t.Run("Rejected", func(t *testing.T) {
		for _, name := range []string{"", "Local", "Mars/Olympus", "not a zone"} {
			_, err := LoadZone(name)
			assert.ErrorIs(t, err, ErrUnknownTimezone, name)
		}
	})
}

func TestResolve(t *testing.T) {
	ny, err := LoadZone("America/New_York")
	require.NoError(t, err)

	t.Run("Standard Time", func(t *testing.T) {
		got := Resolve(Date{Year: 2025, Month: time.January, Day: 6}, TimeOfDay{Hour: 9}, ny)
		assert.Equal(t, time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC), got)
	})

	t.Run("Daylight Time", func(t *testing.T) {
		got := Resolve(Date{Year: 2025, Month: time.July, Day: 7}, TimeOfDay{Hour: 9}, ny)
		assert.Equal(t, time.Date(2025, time.July, 7, 13, 0, 0, 0, time.UTC), got)
	})

	t.Run("UTC Passthrough", func(t *testing.T) {
		got := Resolve(Date{Year: 2025, Month: time.June, Day: 1}, TimeOfDay{Hour: 8, Minute: 15}, time.UTC)
		assert.Equal(t, time.Date(2025, time.June, 1, 8, 15, 0, 0, time.UTC), got)
	})

	t.Run("Skipped Wall Clock Rolls Forward", func(t *testing.T) {
		// 02:30 does not exist in New York on 2025-03-09; clocks jump from
		// 02:00 EST to 03:00 EDT at 07:00 UTC.
		got := Resolve(Date{Year: 2025, Month: time.March, Day: 9}, TimeOfDay{Hour: 2, Minute: 30}, ny)
		assert.Equal(t, time.Date(2025, time.March, 9, 7, 0, 0, 0, time.UTC), got)
	})

	t.Run("Repeated Wall Clock Picks First Occurrence", func(t *testing.T) {
		// 01:30 happens twice in New York on 2025-11-02; the EDT occurrence
		// at 05:30 UTC comes first.
		got := Resolve(Date{Year: 2025, Month: time.November, Day: 2}, TimeOfDay{Hour: 1, Minute: 30}, ny)
		assert.Equal(t, time.Date(2025, time.November, 2, 5, 30, 0, 0, time.UTC), got)
	})

	t.Run("Half Hour Zone Fold", func(t *testing.T) {
		lh, err := LoadZone("Australia/Lord_Howe")
		require.NoError(t, err)

		// Lord Howe steps back thirty minutes on 2025-04-06; 01:45 repeats
		// and the UTC+11 occurrence comes first.
		got := Resolve(Date{Year: 2025, Month: time.April, Day: 6}, TimeOfDay{Hour: 1, Minute: 45}, lh)
		assert.Equal(t, time.Date(2025, time.April, 5, 14, 45, 0, 0, time.UTC), got)
	})
}

func TestFormatClock(t *testing.T) {
	ny, err := LoadZone("America/New_York")
	require.NoError(t, err)

	u := time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "09:00", FormatClock(u, ny))
	assert.Equal(t, "14:00", FormatClock(u, time.UTC))
}
