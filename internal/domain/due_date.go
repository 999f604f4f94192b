package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for due dates, grouping keys
// and date filters.
const DateLayout = "2006-01-02"

// Layouts without a UTC offset. Their wall clock is interpreted in the
// caller's location.
var naiveDateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// DueDate is an optional deadline carried as the literal the user entered.
// It is either a bare calendar date or a date with time of day; the latter
// may or may not carry a UTC offset.
type DueDate struct {
	raw     string
	wall    time.Time // components of the literal, parsed as UTC
	hasTime bool
	zoned   bool // wall is an exact instant
}

// ParseDueDate validates a due-date literal.
func ParseDueDate(s string) (DueDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DueDate{}, fmt.Errorf("%w: empty", ErrInvalidDueDate)
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		return DueDate{raw: s, wall: t}, nil
	}

	for _, layout := range naiveDateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DueDate{raw: s, wall: t, hasTime: true}, nil
		}
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DueDate{raw: s, wall: t, hasTime: true, zoned: true}, nil
	}

	return DueDate{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
}

// NewDueDatePtr parses s, returning nil for blank input.
func NewDueDatePtr(s string) (*DueDate, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDueDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// String returns the literal as entered.
func (d DueDate) String() string {
	return d.raw
}

// HasTime reports whether the literal carries a time of day.
func (d DueDate) HasTime() bool {
	return d.hasTime
}

// CalendarDate returns the YYYY-MM-DD portion of the literal, ignoring time of day.
func (d DueDate) CalendarDate() string {
	return d.wall.Format(DateLayout)
}

// Time returns the instant the due date starts at: midnight for bare dates,
// the literal time otherwise. Literals without an offset are placed in loc.
func (d DueDate) Time(loc *time.Location) time.Time {
	if d.zoned {
		return d.wall
	}
	if loc == nil {
		loc = time.Local
	}
	w := d.wall
	return time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), loc)
}

// EffectiveDeadline is the instant after which the task is overdue.
// A bare date gets until 23:59:59 of that day.
func (d DueDate) EffectiveDeadline(loc *time.Location) time.Time {
	if d.hasTime {
		return d.Time(loc)
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.wall.Year(), d.wall.Month(), d.wall.Day(), 23, 59, 59, 0, loc)
}

// OverdueAt reports whether the effective deadline is strictly before now.
func (d DueDate) OverdueAt(now time.Time, loc *time.Location) bool {
	return d.EffectiveDeadline(loc).Before(now)
}

// MarshalText encodes the literal.
func (d DueDate) MarshalText() ([]byte, error) {
	return []byte(d.raw), nil
}

// UnmarshalText parses and validates the literal.
func (d *DueDate) UnmarshalText(b []byte) error {
	parsed, err := ParseDueDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
