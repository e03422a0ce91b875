package core

import "fmt"

// InstrumentInput is the tagged union over the two entry modes. Both resolve
// once into the canonical Instrument with derived fields populated; the
// projection engine only ever sees the resolved form.
type InstrumentInput interface {
	Resolve() (Instrument, error)
}

type (
	// CalculatedInput derives maturity value and interest from the instrument
	// terms. For payout instruments the interest figure is a simple-interest
	// approximation of the periodic payouts over the full term.
	CalculatedInput struct {
		Name                 string
		Kind                 Kind
		Principal            float64
		AnnualRate           float64
		StartDate            Date
		MaturityDate         Date
		CompoundingFrequency int
		MonthlyContribution  float64
		HasPayout            bool
		PayoutFrequency      int
	}

	// ManualInput carries caller-supplied maturity value and interest, taken
	// verbatim after basic sanity checks. For payout instruments this total can
	// disagree with the simple-interest approximation CalculatedInput would
	// produce; the two paths are intentionally kept separate.
	ManualInput struct {
		Name                 string
		Kind                 Kind
		Principal            float64
		AnnualRate           float64
		StartDate            Date
		MaturityDate         Date
		CompoundingFrequency int
		MonthlyContribution  float64
		HasPayout            bool
		PayoutFrequency      int

		MaturityValue  float64
		InterestEarned float64
	}
)

func (c CalculatedInput) Resolve() (Instrument, error) {
	in := Instrument{
		Name:                 c.Name,
		Kind:                 c.Kind,
		Principal:            c.Principal,
		AnnualRate:           c.AnnualRate,
		StartDate:            c.StartDate,
		MaturityDate:         c.MaturityDate,
		CompoundingFrequency: c.CompoundingFrequency,
		MonthlyContribution:  c.MonthlyContribution,
		HasPayout:            c.HasPayout,
		PayoutFrequency:      c.PayoutFrequency,
	}
	if err := in.Validate(); err != nil {
		return Instrument{}, err
	}

	in.TotalContributions = round2(in.MonthlyContribution * float64(in.termMonths()))
	if in.HasPayout {
		// Interest is paid out, not compounded: maturity is principal plus
		// contributions, interest tracked out-of-band.
		in.MaturityValue = round2(in.Principal + in.TotalContributions)
		in.InterestEarned = SimpleInterest(in.Principal, in.AnnualRate, in.StartDate, in.MaturityDate)
	} else {
		in.MaturityValue = FutureValue(in.Principal, in.AnnualRate, in.StartDate, in.MaturityDate,
			in.CompoundingFrequency, in.MonthlyContribution)
		in.InterestEarned = round2(in.MaturityValue - in.Principal - in.TotalContributions)
	}
	return in, nil
}

func (m ManualInput) Resolve() (Instrument, error) {
	in := Instrument{
		Name:                 m.Name,
		Kind:                 m.Kind,
		Principal:            m.Principal,
		AnnualRate:           m.AnnualRate,
		StartDate:            m.StartDate,
		MaturityDate:         m.MaturityDate,
		CompoundingFrequency: m.CompoundingFrequency,
		MonthlyContribution:  m.MonthlyContribution,
		HasPayout:            m.HasPayout,
		PayoutFrequency:      m.PayoutFrequency,
	}
	if err := in.Validate(); err != nil {
		return Instrument{}, err
	}
	if m.InterestEarned < 0 {
		return Instrument{}, fmt.Errorf("%w: interest earned must be >= 0", ErrValidation)
	}

	in.TotalContributions = round2(in.MonthlyContribution * float64(in.termMonths()))
	in.InterestEarned = round2(m.InterestEarned)
	if in.HasPayout {
		// Payout maturity never includes interest, even when supplied manually.
		in.MaturityValue = round2(in.Principal + in.TotalContributions)
	} else {
		if m.MaturityValue < in.Principal {
			return Instrument{}, fmt.Errorf("%w: maturity value below principal", ErrValidation)
		}
		in.MaturityValue = round2(m.MaturityValue)
	}
	return in, nil
}
