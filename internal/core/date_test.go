package core

import (
	"errors"
	"testing"
)

func TestMonthsBetween(t *testing.T) {
	cases := []struct {
		start, end Date
		want       int
	}{
		{NewDate(2024, 1, 15), NewDate(2024, 1, 15), 0},  // same day
		{NewDate(2024, 3, 1), NewDate(2024, 1, 1), 0},    // end before start
		{NewDate(2024, 1, 15), NewDate(2024, 2, 14), 0},  // one day short
		{NewDate(2024, 1, 15), NewDate(2024, 2, 15), 1},  // exactly one month
		{NewDate(2024, 1, 15), NewDate(2024, 2, 20), 1},  // fraction dropped
		{NewDate(2024, 1, 31), NewDate(2024, 2, 28), 0},  // month-end clamp
		{NewDate(2024, 1, 1), NewDate(2026, 1, 1), 24},   // two years
		{NewDate(2023, 11, 10), NewDate(2024, 2, 10), 3}, // across year boundary
	}
	for i, tc := range cases {
		if got := MonthsBetween(tc.start, tc.end); got != tc.want {
			t.Fatalf("case %d: MonthsBetween(%s, %s) = %d, want %d", i, tc.start, tc.end, got, tc.want)
		}
	}
}

func TestAddMonthsClampsDay(t *testing.T) {
	cases := []struct {
		d    Date
		n    int
		want Date
	}{
		{NewDate(2024, 1, 31), 1, NewDate(2024, 2, 29)}, // leap February
		{NewDate(2023, 1, 31), 1, NewDate(2023, 2, 28)},
		{NewDate(2024, 1, 31), 3, NewDate(2024, 4, 30)},
		{NewDate(2024, 11, 15), 2, NewDate(2025, 1, 15)},
		{NewDate(2024, 2, 29), 12, NewDate(2025, 2, 28)},
	}
	for i, tc := range cases {
		if got := tc.d.AddMonths(tc.n); !got.Equal(tc.want.Time) {
			t.Fatalf("case %d: %s.AddMonths(%d) = %s, want %s", i, tc.d, tc.n, got, tc.want)
		}
	}
}

func TestMonthOf(t *testing.T) {
	m := MonthOf(NewDate(2024, 2, 14))
	if !m.First.Equal(NewDate(2024, 2, 1).Time) || !m.Last.Equal(NewDate(2024, 2, 29).Time) {
		t.Fatalf("unexpected bucket %s..%s", m.First, m.Last)
	}
	if m.Label() != "Feb 2024" {
		t.Fatalf("unexpected label %q", m.Label())
	}
	next := m.Next()
	if !next.First.Equal(NewDate(2024, 3, 1).Time) || !next.Last.Equal(NewDate(2024, 3, 31).Time) {
		t.Fatalf("unexpected next bucket %s..%s", next.First, next.Last)
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween(NewDate(2024, 1, 15), NewDate(2024, 2, 14)); got != 30 {
		t.Fatalf("expected 30 days, got %d", got)
	}
	if got := DaysBetween(NewDate(2024, 1, 15), NewDate(2024, 1, 15)); got != 0 {
		t.Fatalf("expected 0 days, got %d", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-30")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !d.Equal(NewDate(2024, 6, 30).Time) {
		t.Fatalf("unexpected date %s", d)
	}

	if _, err := ParseDate("30/06/2024"); !errors.Is(err, ErrData) {
		t.Fatalf("expected ErrData, got %v", err)
	}
}
