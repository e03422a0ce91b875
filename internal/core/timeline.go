package core

import "fmt"

type (
	// InstrumentValue is one instrument's share of a projection point.
	InstrumentValue struct {
		InstrumentName string
		Value          float64
	}

	// ProjectionPoint is one month in an output timeline, immutable once
	// produced. Total is the sum over the breakdown.
	ProjectionPoint struct {
		Date      Date
		Total     float64
		Breakdown []InstrumentValue
	}
)

// TimelineDates returns the evaluation dates for a portfolio: today, then one
// date per calendar month through the latest maturity inclusive. The length is
// MonthsBetween(today, maxMaturity) + 2; empty portfolios yield no dates.
func TimelineDates(insts []Instrument, today Date) []Date {
	if len(insts) == 0 {
		return nil
	}
	maxMaturity := insts[0].MaturityDate
	for _, in := range insts[1:] {
		if in.MaturityDate.After(maxMaturity) {
			maxMaturity = in.MaturityDate
		}
	}

	months := MonthsBetween(today, maxMaturity)
	dates := make([]Date, 0, months+2)
	dates = append(dates, today)
	for k := 1; k <= months+1; k++ {
		dates = append(dates, today.AddMonths(k))
	}
	return dates
}

// InstrumentSeries evaluates one instrument across the timeline dates under
// the scenario. The first date is always "today" and carries the raw,
// un-grown principal; later dates go through the scenario evaluation.
// Instruments are independent, so callers may run this per instrument in
// parallel and combine afterwards.
func InstrumentSeries(in Instrument, sc Scenario, today Date, dates []Date) ([]float64, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("instrument %q: %w", in.Name, err)
	}
	values := make([]float64, len(dates))
	for i, d := range dates {
		if i == 0 {
			values[i] = in.Principal
			continue
		}
		values[i] = sc.Evaluate(in, d, today)
	}
	return values, nil
}

// CombineSeries reduces per-instrument series into the combined timeline.
// series[i] must line up with insts[i] and have one value per date.
func CombineSeries(insts []Instrument, series [][]float64, dates []Date) ([]ProjectionPoint, error) {
	if len(series) != len(insts) {
		return nil, fmt.Errorf("series count %d does not match instrument count %d", len(series), len(insts))
	}
	points := make([]ProjectionPoint, len(dates))
	for di, d := range dates {
		p := ProjectionPoint{Date: d, Breakdown: make([]InstrumentValue, 0, len(insts))}
		for ii, in := range insts {
			if len(series[ii]) != len(dates) {
				return nil, fmt.Errorf("series for %q has %d values, want %d", in.Name, len(series[ii]), len(dates))
			}
			v := series[ii][di]
			p.Total += v
			p.Breakdown = append(p.Breakdown, InstrumentValue{InstrumentName: in.Name, Value: v})
		}
		points[di] = p
	}
	return points, nil
}

// GenerateTimeline is the sequential reduction over the whole portfolio.
// A failure on any instrument propagates instead of being absorbed into the
// total as zero.
func GenerateTimeline(insts []Instrument, sc Scenario, today Date) ([]ProjectionPoint, error) {
	dates := TimelineDates(insts, today)
	if len(dates) == 0 {
		return nil, nil
	}
	series := make([][]float64, len(insts))
	for i, in := range insts {
		s, err := InstrumentSeries(in, sc, today, dates)
		if err != nil {
			return nil, err
		}
		series[i] = s
	}
	return CombineSeries(insts, series, dates)
}
