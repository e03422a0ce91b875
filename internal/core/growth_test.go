package core

import (
	"math"
	"testing"
)

func TestFutureValueZeroRateNoContribution(t *testing.T) {
	start := NewDate(2024, 1, 1)
	for _, months := range []int{1, 12, 60, 240} {
		got := FutureValue(50000, 0, start, start.AddMonths(months), 12, 0)
		if got != 50000 {
			t.Fatalf("months=%d: expected principal unchanged, got %v", months, got)
		}
	}
}

func TestFutureValueMonthlyCompounding(t *testing.T) {
	// With frequency 12 the effective monthly rate is exactly rate/12.
	principal, rate := 10000.0, 0.12
	start := NewDate(2024, 1, 1)
	months := 18

	want := round2(principal * math.Pow(1+rate/12, float64(months)))
	got := FutureValue(principal, rate, start, start.AddMonths(months), 12, 0)
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("FV = %v, want %v", got, want)
	}
}

func TestFutureValueQuarterlyCompounding(t *testing.T) {
	// 100000 at 6.5% nominal, quarterly, 2 years: (1 + 0.065/4)^8.
	got := FutureValue(100000, 0.065, NewDate(2024, 1, 1), NewDate(2026, 1, 1), 4, 0)
	want := 100000 * math.Pow(1+0.065/4, 8)
	if math.Abs(got-want) > 1 {
		t.Fatalf("FV = %v, want %v", got, want)
	}
}

func TestFutureValueAnnuity(t *testing.T) {
	start := NewDate(2024, 1, 1)

	// r > 0: C * ((1+r)^n - 1) / r with r the effective monthly rate.
	contrib, rate, months := 500.0, 0.06, 24
	r := rate / 12
	want := round2(contrib * (math.Pow(1+r, float64(months)) - 1) / r)
	got := FutureValue(0, rate, start, start.AddMonths(months), 12, contrib)
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("annuity FV = %v, want %v", got, want)
	}

	// r = 0: plain sum C * n.
	got = FutureValue(0, 0, start, start.AddMonths(months), 12, contrib)
	if got != contrib*float64(months) {
		t.Fatalf("zero-rate annuity FV = %v, want %v", got, contrib*float64(months))
	}
}

func TestFutureValueEndBeforeStart(t *testing.T) {
	got := FutureValue(1000, 0.08, NewDate(2024, 6, 1), NewDate(2024, 1, 1), 4, 100)
	if got != 1000 {
		t.Fatalf("expected principal for end before start, got %v", got)
	}
}

func TestMonthlyRate(t *testing.T) {
	cases := []struct {
		rate float64
		freq int
		want float64
	}{
		{0.12, 12, 0.01},
		{0, 4, 0},
		{0.065, 4, math.Pow(1+0.065/4, 4.0/12.0) - 1},
	}
	for i, tc := range cases {
		if got := MonthlyRate(tc.rate, tc.freq); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("case %d: MonthlyRate = %v, want %v", i, got, tc.want)
		}
	}
}

func TestPayoutValueIgnoresRate(t *testing.T) {
	start, end := NewDate(2024, 1, 1), NewDate(2026, 1, 1)
	// Maturity of a payout instrument is principal + contributions, whatever the rate.
	if got := PayoutValue(100000, start, end, 2000); got != 100000+2000*24 {
		t.Fatalf("payout value = %v, want %v", got, 100000+2000*24)
	}
}

func TestSimpleInterest(t *testing.T) {
	start := NewDate(2024, 1, 1)
	end := NewDate(2025, 1, 1) // 366 days in 2024
	want := round2(100000 * 0.07 * (366 / 365.25))
	if got := SimpleInterest(100000, 0.07, start, end); math.Abs(got-want) > 0.01 {
		t.Fatalf("simple interest = %v, want %v", got, want)
	}
	if got := SimpleInterest(100000, 0.07, end, start); got != 0 {
		t.Fatalf("expected 0 for reversed dates, got %v", got)
	}
}
