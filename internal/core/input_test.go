package core

import (
	"errors"
	"math"
	"testing"
)

func TestCalculatedInputResolve(t *testing.T) {
	in, err := CalculatedInput{
		Name: "fd", Kind: FixedDeposit,
		Principal: 100000, AnnualRate: 0.065,
		StartDate: NewDate(2024, 1, 1), MaturityDate: NewDate(2026, 1, 1),
		CompoundingFrequency: 4,
	}.Resolve()
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	wantMaturity := FutureValue(100000, 0.065, NewDate(2024, 1, 1), NewDate(2026, 1, 1), 4, 0)
	if in.MaturityValue != wantMaturity {
		t.Fatalf("maturity value = %v, want %v", in.MaturityValue, wantMaturity)
	}
	if in.TotalContributions != 0 {
		t.Fatalf("total contributions = %v, want 0", in.TotalContributions)
	}
	if math.Abs(in.InterestEarned-(wantMaturity-100000)) > 0.01 {
		t.Fatalf("interest earned = %v, want %v", in.InterestEarned, wantMaturity-100000)
	}
}

func TestCalculatedInputResolvePayout(t *testing.T) {
	in, err := CalculatedInput{
		Name: "scss", Kind: Other,
		Principal: 200000, AnnualRate: 0.082,
		StartDate: NewDate(2024, 1, 1), MaturityDate: NewDate(2029, 1, 1),
		HasPayout: true, PayoutFrequency: 4,
		MonthlyContribution: 500,
	}.Resolve()
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Payout maturity never compounds: principal plus summed contributions.
	if in.MaturityValue != 200000+500*60 {
		t.Fatalf("maturity value = %v, want %v", in.MaturityValue, 200000+500*60)
	}
	want := SimpleInterest(200000, 0.082, in.StartDate, in.MaturityDate)
	if in.InterestEarned != want {
		t.Fatalf("interest earned = %v, want simple interest %v", in.InterestEarned, want)
	}
}

func TestManualInputResolve(t *testing.T) {
	in, err := ManualInput{
		Name: "fd", Kind: FixedDeposit,
		Principal: 50000, AnnualRate: 0.06,
		StartDate: NewDate(2024, 1, 1), MaturityDate: NewDate(2025, 1, 1),
		CompoundingFrequency: 12,
		MaturityValue:        53100,
		InterestEarned:       3100,
	}.Resolve()
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if in.MaturityValue != 53100 || in.InterestEarned != 3100 {
		t.Fatalf("manual figures not taken verbatim: %v / %v", in.MaturityValue, in.InterestEarned)
	}
}

func TestManualInputResolvePayoutInterestVerbatim(t *testing.T) {
	// Caller-supplied payout interest is kept as-is even when it disagrees
	// with the simple-interest approximation; the paths are not reconciled.
	in, err := ManualInput{
		Name: "payout", Kind: Other,
		Principal: 100000, AnnualRate: 0.08,
		StartDate: NewDate(2024, 1, 1), MaturityDate: NewDate(2026, 1, 1),
		HasPayout: true, PayoutFrequency: 2,
		InterestEarned: 12345.67,
	}.Resolve()
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if in.InterestEarned != 12345.67 {
		t.Fatalf("interest earned = %v, want 12345.67", in.InterestEarned)
	}
	if in.MaturityValue != 100000 {
		t.Fatalf("payout maturity = %v, must exclude interest", in.MaturityValue)
	}
}

func TestInputResolveValidation(t *testing.T) {
	cases := []struct {
		name  string
		input InstrumentInput
	}{
		{"maturity equals start", CalculatedInput{
			Name: "x", Kind: FixedDeposit, Principal: 1000, AnnualRate: 0.05,
			StartDate: NewDate(2024, 1, 1), MaturityDate: NewDate(2024, 1, 1),
			CompoundingFrequency: 12,
		}},
		{"maturity before start", CalculatedInput{
			Name: "x", Kind: FixedDeposit, Principal: 1000, AnnualRate: 0.05,
			StartDate: NewDate(2024, 6, 1), MaturityDate: NewDate(2024, 1, 1),
			CompoundingFrequency: 12,
		}},
		{"rate above 1", CalculatedInput{
			Name: "x", Kind: FixedDeposit, Principal: 1000, AnnualRate: 6.5,
			StartDate: NewDate(2024, 1, 1), MaturityDate: NewDate(2025, 1, 1),
			CompoundingFrequency: 12,
		}},
		{"bad frequency", CalculatedInput{
			Name: "x", Kind: FixedDeposit, Principal: 1000, AnnualRate: 0.05,
			StartDate: NewDate(2024, 1, 1), MaturityDate: NewDate(2025, 1, 1),
			CompoundingFrequency: 7,
		}},
		{"negative manual interest", ManualInput{
			Name: "x", Kind: FixedDeposit, Principal: 1000, AnnualRate: 0.05,
			StartDate: NewDate(2024, 1, 1), MaturityDate: NewDate(2025, 1, 1),
			CompoundingFrequency: 12, MaturityValue: 1050, InterestEarned: -1,
		}},
	}
	for _, tc := range cases {
		if _, err := tc.input.Resolve(); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestInstrumentState(t *testing.T) {
	in := Instrument{StartDate: NewDate(2024, 3, 1), MaturityDate: NewDate(2025, 3, 1)}
	cases := []struct {
		today Date
		want  LifecycleState
	}{
		{NewDate(2024, 2, 28), Upcoming},
		{NewDate(2024, 3, 1), Active},
		{NewDate(2024, 9, 15), Active},
		{NewDate(2025, 3, 1), Active},
		{NewDate(2025, 3, 2), Matured},
	}
	for i, tc := range cases {
		if got := in.State(tc.today); got != tc.want {
			t.Fatalf("case %d: state on %s = %s, want %s", i, tc.today, got, tc.want)
		}
	}
}
