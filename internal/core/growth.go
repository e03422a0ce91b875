package core

import "math"

// round2 rounds to 2 decimals, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MonthlyRate converts a nominal annual rate compounded `frequency` times per
// year into the equivalent effective monthly rate, so contributions can be
// modeled on a uniform monthly grid regardless of the compounding schedule.
func MonthlyRate(annualRate float64, frequency int) float64 {
	return math.Pow(1+annualRate/float64(frequency), float64(frequency)/12.0) - 1
}

// FutureValue computes the compound future value of principal plus end-of-month
// contributions between start and end. Durations below one whole month are
// dropped, so end on or before start returns the principal unchanged. The rate
// must already be non-negative; scenario shocks are clamped before this call.
func FutureValue(principal, annualRate float64, start, end Date, frequency int, monthlyContribution float64) float64 {
	months := MonthsBetween(start, end)
	monthlyRate := MonthlyRate(annualRate, frequency)

	fvPrincipal := principal * math.Pow(1+monthlyRate, float64(months))

	// Ordinary annuity: contributions posted at each month end.
	var fvContrib float64
	if monthlyRate != 0 {
		fvContrib = monthlyContribution * (math.Pow(1+monthlyRate, float64(months)) - 1) / monthlyRate
	} else {
		fvContrib = monthlyContribution * float64(months)
	}

	return round2(fvPrincipal + fvContrib)
}

// PayoutValue is the maturity value of a payout (non-cumulative) instrument:
// interest is paid out periodically instead of folding into principal, so the
// principal never compounds and contributions are summed, never grown.
func PayoutValue(principal float64, start, end Date, monthlyContribution float64) float64 {
	months := MonthsBetween(start, end)
	return round2(principal + monthlyContribution*float64(months))
}

// SimpleInterest approximates the realized periodic payouts of a payout
// instrument over the elapsed duration. The figure is informational and must
// never be compounded back into the maturity value.
func SimpleInterest(principal, annualRate float64, start, end Date) float64 {
	years := YearsBetween(start, end)
	return round2(principal * annualRate * years)
}
