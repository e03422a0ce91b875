package core

import (
	"math"
	"testing"
)

func TestProrateSplitsAcrossMonths(t *testing.T) {
	// 300 over 2024-01-15..2024-02-14 is 31 days: 17 in January, 14 in February.
	iv := Interval{Start: NewDate(2024, 1, 15), End: NewDate(2024, 2, 14)}
	if err := iv.Validate(); err != nil {
		t.Fatalf("expected valid interval, got %v", err)
	}

	jan := Prorate(300, iv, MonthOf(NewDate(2024, 1, 1)))
	feb := Prorate(300, iv, MonthOf(NewDate(2024, 2, 1)))

	if math.Abs(jan-300.0*17/31) > 1e-9 {
		t.Fatalf("january share = %v, want %v", jan, 300.0*17/31)
	}
	if math.Abs(feb-300.0*14/31) > 1e-9 {
		t.Fatalf("february share = %v, want %v", feb, 300.0*14/31)
	}
	if math.Abs(jan+feb-300) > 1e-6 {
		t.Fatalf("shares sum to %v, want 300", jan+feb)
	}
}

func TestProrateConservation(t *testing.T) {
	cases := []struct {
		amount float64
		iv     Interval
	}{
		{1000, Interval{Start: NewDate(2024, 1, 1), End: NewDate(2024, 12, 31)}},
		{123.45, Interval{Start: NewDate(2024, 2, 10), End: NewDate(2024, 5, 3)}},
		{77, Interval{Start: NewDate(2023, 12, 28), End: NewDate(2024, 1, 2)}},
		{0.01, Interval{Start: NewDate(2024, 6, 1), End: NewDate(2024, 6, 30)}},
	}
	for i, tc := range cases {
		var sum float64
		last := MonthOf(tc.iv.End)
		for m := MonthOf(tc.iv.Start); !m.First.After(last.First); m = m.Next() {
			sum += Prorate(tc.amount, tc.iv, m)
		}
		if math.Abs(sum-tc.amount) > 1e-6 {
			t.Fatalf("case %d: shares sum to %v, want %v", i, sum, tc.amount)
		}
	}
}

func TestProrateSingleDay(t *testing.T) {
	iv := Interval{Start: NewDate(2024, 3, 7), End: NewDate(2024, 3, 7)}
	if got := Prorate(42, iv, MonthOf(NewDate(2024, 3, 1))); got != 42 {
		t.Fatalf("expected full amount in its month, got %v", got)
	}
	if got := Prorate(42, iv, MonthOf(NewDate(2024, 4, 1))); got != 0 {
		t.Fatalf("expected 0 outside its month, got %v", got)
	}
}

func TestProrateNoOverlap(t *testing.T) {
	iv := Interval{Start: NewDate(2024, 1, 15), End: NewDate(2024, 2, 14)}
	if got := Prorate(300, iv, MonthOf(NewDate(2024, 3, 1))); got != 0 {
		t.Fatalf("expected 0 for non-overlapping month, got %v", got)
	}
}

func TestIntervalValidate(t *testing.T) {
	bad := Interval{Start: NewDate(2024, 2, 14), End: NewDate(2024, 1, 15)}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for reversed interval")
	}
	if err := (Interval{}).Validate(); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}
