package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical wire/storage format for dates.
const DateLayout = "2006-01-02"

// ErrData marks values that could not be read back from persistence or the
// ledger in a usable form. Callers must surface it, never coerce to a default.
var ErrData = errors.New("unreadable data")

type (
	// Date is a calendar day. The time-of-day component is always midnight UTC.
	Date struct {
		time.Time
	}

	// MonthBucket is the inclusive first..last day range of one calendar month.
	// It is the unit of proration and timeline aggregation.
	MonthBucket struct {
		First Date
		Last  Date
	}
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a stored date string. Failures are ErrData: a persisted
// record with a broken date is a data problem, not a validation problem.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: parse date %q: %v", ErrData, s, err)
	}
	return Date{Time: t}, nil
}

// Today returns the current calendar day in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date in the canonical YYYY-MM-DD form instead of
// the RFC 3339 timestamp the embedded time.Time would produce.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls on a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// AddMonths advances d by n calendar months, clamping the day to the target
// month's length so Jan 31 + 1 month lands on the last day of February
// instead of normalizing into March.
func (d Date) AddMonths(n int) Date {
	year, month, day := d.Date()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return NewDate(first.Year(), int(first.Month()), day)
}

// MonthOf returns the calendar month bucket containing d.
func MonthOf(d Date) MonthBucket {
	year, month, _ := d.Date()
	first := NewDate(year, int(month), 1)
	last := Date{Time: time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)}
	return MonthBucket{First: first, Last: last}
}

// Next returns the bucket for the following calendar month.
func (m MonthBucket) Next() MonthBucket {
	return MonthOf(m.First.AddMonths(1))
}

// Contains reports whether d falls inside the bucket.
func (m MonthBucket) Contains(d Date) bool {
	return !d.Before(m.First) && !d.After(m.Last)
}

// Label renders the bucket as "Jan 2024".
func (m MonthBucket) Label() string {
	return m.First.Format("Jan 2006")
}

// DaysBetween returns the number of whole days from a to b (exclusive of a,
// so DaysBetween(d, d) == 0). Negative when b precedes a.
func DaysBetween(a, b Date) int {
	return int(b.Time.Sub(a.Time).Hours() / 24)
}

// MonthsBetween returns the number of whole calendar months elapsed from
// start to end, computed from year/month/day components rather than a
// day-count division. Fractional remainders are dropped; the result is 0
// whenever end is on or before start.
func MonthsBetween(start, end Date) int {
	if !end.After(start) {
		return 0
	}
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	months := (ey-sy)*12 + int(em-sm)
	if ed < sd {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// YearsBetween returns fractional years from a to b using the 365.25-day
// convention, floored at zero.
func YearsBetween(a, b Date) float64 {
	days := DaysBetween(a, b)
	if days < 0 {
		return 0
	}
	return float64(days) / 365.25
}
