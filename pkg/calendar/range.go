package calendar

import (
	"errors"
	"fmt"
)

// Range errors.
var (
	ErrInvalidRange = errors.New("invalid date range")
	ErrRangeTooLong = errors.New("date range too long")
)

// MaxRangeDays bounds the ranges accepted from callers, roughly ten years.
const MaxRangeDays = 3660

// Range is an inclusive span of calendar days.
type Range struct {
	Start Day `json:"start"`
	End   Day `json:"end"`
}

// NewRange builds a validated range.
func NewRange(start, end Day) (Range, error) {
	r := Range{Start: start, End: end}

	err := r.Validate()
	if err != nil {
		return Range{}, err
	}

	return r, nil
}

// ParseRange parses two ISO dates into a validated range.
func ParseRange(start, end string) (Range, error) {
	s, err := ParseDay(start)
	if err != nil {
		return Range{}, fmt.Errorf("range start: %w", err)
	}

	e, err := ParseDay(end)
	if err != nil {
		return Range{}, fmt.Errorf("range end: %w", err)
	}

	return NewRange(s, e)
}

// Validate fails with ErrInvalidRange when Start is after End or either
// bound is unset.
func (r Range) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: unset bound", ErrInvalidRange)
	}

	if r.Start.After(r.End) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, r.Start, r.End)
	}

	return nil
}

// String renders the range as "start to end".
func (r Range) String() string {
	return r.Start.String() + " to " + r.End.String()
}

// Len returns the number of days in the range, or 0 when it is invalid.
func (r Range) Len() int {
	if r.Validate() != nil {
		return 0
	}

	return r.Start.DaysUntil(r.End) + 1
}

// CheckLen fails with ErrRangeTooLong when r spans more than maxDays days.
// An invalid range passes; Validate reports it.
func (r Range) CheckLen(maxDays int) error {
	n := r.Len()
	if n > maxDays {
		return fmt.Errorf("%w: %s is %d days (max %d)", ErrRangeTooLong, r, n, maxDays)
	}

	return nil
}

// Contains reports whether d lies within the range, bounds included.
func (r Range) Contains(d Day) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days enumerates every day of the range in ascending order, independent
// of any data.
func (r Range) Days() ([]Day, error) {
	err := r.Validate()
	if err != nil {
		return nil, err
	}

	days := make([]Day, 0, r.Len())

	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}

	return days, nil
}
