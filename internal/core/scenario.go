package core

import "math"

// Scenario holds the what-if transforms applied around the growth projector.
// It is stateless: the same scenario can evaluate any instrument on any date.
type Scenario struct {
	RateShockPct float64 // multiplicative rate adjustment, e.g. -10 for -10%
	InflationPct float64 // assumed annual inflation for real-terms mode
	RealTerms    bool    // deflate nominal values to purchasing power
}

// ShockedRate applies a percentage shock to a nominal rate. A shock driving
// the rate below zero clamps to exactly 0: a valid degenerate scenario, not
// an error, and the projector never sees a negative rate.
func ShockedRate(baseRate, shockPct float64) float64 {
	shocked := baseRate * (1 + shockPct/100)
	if shocked < 0 {
		return 0
	}
	return shocked
}

// Deflate converts a nominal value into real terms over the elapsed years.
// It applies only to already-computed values, never to rates.
func Deflate(nominal, inflationPct, years float64) float64 {
	if years <= 0 {
		return nominal
	}
	return nominal / math.Pow(1+inflationPct/100, years)
}

// Evaluate projects one instrument's value on one date under this scenario:
// shocked rate into the growth projector, then optional deflation anchored
// on today.
func (sc Scenario) Evaluate(in Instrument, date, today Date) float64 {
	rate := ShockedRate(in.AnnualRate, sc.RateShockPct)
	value := in.ValueAt(date, rate)
	if sc.RealTerms {
		value = Deflate(value, sc.InflationPct, YearsBetween(today, date))
	}
	return value
}
