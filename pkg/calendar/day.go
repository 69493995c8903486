// Package calendar provides civil-date values that are independent of time
// zone once computed, plus inclusive day ranges.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ISOLayout is the canonical text form of a Day.
const ISOLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// ErrBadDay is returned when a day string cannot be parsed.
var ErrBadDay = errors.New("invalid calendar day")

// Day is a calendar date without a time or location. The zero value is
// not a valid day; use IsZero to detect it.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// Date returns the normalised Day for y-m-d (overflowing days roll over,
// as time.Date does).
func Date(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), time.UTC)
}

// DayOf returns the local calendar day of t in loc. A nil loc means t's own
// location.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc != nil {
		t = t.In(loc)
	}

	y, m, d := t.Date()

	return Day{Year: y, Month: m, Day: d}
}

// Today returns the calendar day of now in loc.
func Today(now time.Time, loc *time.Location) Day {
	return DayOf(now, loc)
}

// ParseDay parses an ISO "2006-01-02" date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrBadDay, s)
	}

	return DayOf(t, time.UTC), nil
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d == Day{}
}

// Time returns midnight of d in loc (UTC when loc is nil).
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return Date(d.Year, d.Month, d.Day+n)
}

// Compare returns -1, 0 or +1 as d is before, equal to or after other.
func (d Day) Compare(other Day) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool { return d.Compare(other) > 0 }

// DaysUntil returns the number of calendar days from d to other
// (negative when other is earlier).
func (d Day) DaysUntil(other Day) int {
	// Unix seconds keep spans beyond time.Duration's ~292 years exact.
	return int((other.Time(time.UTC).Unix() - d.Time(time.UTC).Unix()) / secondsPerDay)
}

// Format renders d with a time.Format layout.
func (d Day) Format(layout string) string {
	return d.Time(time.UTC).Format(layout)
}

// String returns the ISO form.
func (d Day) String() string {
	return d.Format(ISOLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
