// Package clock answers "what day is it" in the configured timezone.
package clock

import "time"

const DateLayout = "2006-01-02"

type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New returns a clock for loc. A nil loc means UTC.
func New(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: time.Now}
}

// Fixed returns a clock frozen at t, for tests.
func Fixed(t time.Time) *Clock {
	return &Clock{loc: t.Location(), now: func() time.Time { return t }}
}

// Func returns a clock reading now, for tests that move time.
func Func(loc *time.Location, now func() time.Time) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: now}
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today is the current date as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.Now().Format(DateLayout)
}

func (c *Clock) Location() *time.Location {
	return c.loc
}
