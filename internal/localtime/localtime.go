package localtime

import (
	"fmt"
	"net/http"
	"time"

	// Fallback zone database for hosts and containers without tzdata.
	_ "time/tzdata"

	"github.com/openbookings/appointment-backend/internal/pkg/apperror"
)

var (
	ErrInvalidTimeSpec = apperror.New(http.StatusBadRequest, "InvalidTimeSpec", "invalid time of day, expected HH:MM")
	ErrUnknownTimezone = apperror.New(http.StatusBadRequest, "UnknownTimezone", "unknown timezone identifier")
	ErrInvalidDate     = apperror.New(http.StatusBadRequest, "ValidationError", "invalid date, expected YYYY-MM-DD")
)

// TimeOfDay is a wall-clock time with no date or zone attached.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses a wall-clock string in "HH:MM" or "HH:MM:SS" form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, ErrInvalidTimeSpec
}

// String renders the time as "15:04", appending seconds only when set.
func (t TimeOfDay) String() string {
	if t.Second != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// SecondsFromMidnight returns the offset of t from midnight in seconds.
func (t TimeOfDay) SecondsFromMidnight() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// FromSeconds builds a TimeOfDay from an offset in seconds from midnight.
func FromSeconds(secs int) TimeOfDay {
	return TimeOfDay{Hour: secs / 3600, Minute: secs / 60 % 60, Second: secs % 60}
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.SecondsFromMidnight() < other.SecondsFromMidnight()
}

// Date is a calendar date with no time-of-day or zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a calendar date in "YYYY-MM-DD" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Weekday returns the day of the week for d, Sunday = 0.
func (d Date) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

// AddDays returns the calendar date n days after d.
func (d Date) AddDays(n int) Date {
	t := d.midnightUTC().AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DaysUntil returns the number of calendar days from d to other,
// negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int(other.midnightUTC().Sub(d.midnightUTC()) / (24 * time.Hour))
}

// After reports whether d is a later calendar date than other.
func (d Date) After(other Date) bool {
	return d.midnightUTC().After(other.midnightUTC())
}

func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// LoadZone resolves an IANA zone identifier such as "America/New_York".
// Empty names and "Local" are rejected so stored rules never depend on
// server-local settings.
func LoadZone(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, ErrUnknownTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, ErrUnknownTimezone
	}
	return loc, nil
}

// Resolve maps a wall-clock time on a calendar date in loc to an absolute
// UTC instant.
//
// Daylight-saving transitions are settled deterministically rather than left
// to library defaults: a wall clock skipped by a spring-forward transition
// resolves to the transition instant itself (the first valid moment at or
// after the requested time), and a wall clock repeated by a fall-back
// transition resolves to its first occurrence (the earlier absolute instant).
func Resolve(d Date, t TimeOfDay, loc *time.Location) time.Time {
	want := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", d.Year, int(d.Month), d.Day, t.Hour, t.Minute, t.Second)
	resolved := time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, loc)

	if wallOf(resolved, loc) == want {
		// The wall clock exists. If the transition repeated it, time.Date
		// may have picked the later occurrence; an instant one transition
		// step earlier showing the same wall clock is the first one.
		// One hour covers common transitions, thirty minutes the
		// half-hour zones.
		for _, back := range []time.Duration{time.Hour, 30 * time.Minute} {
			if earlier := resolved.Add(-back); wallOf(earlier, loc) == want {
				return earlier.UTC()
			}
		}
		return resolved.UTC()
	}

	// The wall clock fell into a spring-forward gap and time.Date landed on
	// one side of the transition. Whichever zone boundary of the produced
	// instant faces the requested time is the transition itself.
	zoneStart, zoneEnd := resolved.ZoneBounds()
	if wallOf(resolved, loc) < want {
		return zoneEnd.UTC()
	}
	return zoneStart.UTC()
}

// FormatClock renders the instant's wall clock in loc as "15:04".
func FormatClock(u time.Time, loc *time.Location) string {
	return u.In(loc).Format("15:04")
}

// wallOf renders the full wall clock of u in loc in a form that compares
// lexicographically by date and time.
func wallOf(u time.Time, loc *time.Location) string {
	return u.In(loc).Format("2006-01-02T15:04:05")
}
