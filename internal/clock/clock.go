package clock

import "time"

// Clock supplies the current instant. Policy checks and slot generation take
// "now" from an injected Clock so tests can pin it.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock and reports it in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}
