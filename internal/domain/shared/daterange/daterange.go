package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: end must be after start")
	ErrInvalidDates = errors.New("daterange: dates are missing or unparsable")
)

// DateRange represents a half-open interval of calendar days [Start, End).
// Time-of-day is discarded on construction; all comparisons operate on UTC
// midnights.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// New builds a booking-grade range: both days present and End strictly after
// Start once truncated to day granularity.
func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: Day(start), End: Day(end)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// NewWindow builds an availability-grade range where End >= Start is accepted.
// A zero-length window is stored but covers nothing under half-open booking
// semantics.
func NewWindow(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrInvalidDates
	}
	dr := DateRange{Start: Day(start), End: Day(end)}
	if dr.End.Before(dr.Start) {
		return DateRange{}, ErrInvalidDates
	}
	return dr, nil
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrInvalidRange
	}
	if !dr.End.After(dr.Start) {
		return ErrInvalidRange
	}
	return nil
}

func (dr DateRange) Nights() int {
	return int(dr.End.Sub(dr.Start).Hours() / 24)
}

// Overlaps reports whether the two half-open ranges share at least one day.
// A range ending on day X does not overlap one starting on day X, so
// same-day checkout/checkin is allowed.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.Start.Before(other.End) && other.Start.Before(dr.End)
}

// Covers reports whether dr fully contains other, boundaries inclusive.
// Note the boundary convention differs from Overlaps on purpose: coverage is
// used for availability checks where touching edges count.
func (dr DateRange) Covers(other DateRange) bool {
	return !dr.Start.After(other.Start) && !dr.End.Before(other.End)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = Day(t)
	return !t.Before(dr.Start) && t.Before(dr.End)
}

// FilterOverlapping returns every item whose range overlaps candidate,
// preserving input order.
func FilterOverlapping[T any](candidate DateRange, items []T, rangeOf func(T) DateRange) []T {
	var out []T
	for _, item := range items {
		if candidate.Overlaps(rangeOf(item)) {
			out = append(out, item)
		}
	}
	return out
}

// AnyCovers reports whether at least one of the given ranges covers candidate.
func AnyCovers[T any](candidate DateRange, items []T, rangeOf func(T) DateRange) bool {
	for _, item := range items {
		if rangeOf(item).Covers(candidate) {
			return true
		}
	}
	return false
}
