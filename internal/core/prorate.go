package core

import "errors"

var ErrInvalidInterval = errors.New("interval end before start")

// Interval is an inclusive day range [Start, End].
type Interval struct {
	Start Date
	End   Date
}

// Validate rejects malformed intervals before they reach Prorate.
// A single-day interval (Start == End) is valid.
func (iv Interval) Validate() error {
	if iv.Start.IsZero() || iv.End.IsZero() {
		return errors.New("interval dates cannot be zero")
	}
	if iv.End.Before(iv.Start) {
		return ErrInvalidInterval
	}
	return nil
}

// Days returns the inclusive day count of the interval.
func (iv Interval) Days() int {
	return DaysBetween(iv.Start, iv.End) + 1
}

// Prorate splits amount proportionally by the interval's day overlap with the
// given month. Summing the result over every month intersecting the interval
// reproduces amount within floating tolerance. The caller must have validated
// the interval; a degenerate zero-day interval yields 0.
func Prorate(amount float64, iv Interval, month MonthBucket) float64 {
	totalDays := iv.Days()
	if totalDays <= 0 {
		return 0
	}

	overlapStart := iv.Start
	if month.First.After(overlapStart) {
		overlapStart = month.First
	}
	overlapEnd := iv.End
	if month.Last.Before(overlapEnd) {
		overlapEnd = month.Last
	}

	overlapDays := DaysBetween(overlapStart, overlapEnd) + 1
	if overlapDays <= 0 {
		return 0
	}

	return amount * float64(overlapDays) / float64(totalDays)
}
