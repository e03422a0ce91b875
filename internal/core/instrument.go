package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	FixedDeposit      Kind = "FixedDeposit"
	RecurringDeposit  Kind = "RecurringDeposit"
	RetirementAccount Kind = "RetirementAccount"
	Other             Kind = "Other"
)

const (
	Upcoming LifecycleState = "Upcoming"
	Active   LifecycleState = "Active"
	Matured  LifecycleState = "Matured"
)

type (
	// Kind classifies a savings instrument.
	Kind string

	// LifecycleState is derived from today's date, never stored.
	LifecycleState string

	// Instrument is the canonical savings vehicle record. The derived fields
	// (TotalContributions, MaturityValue, InterestEarned) are recomputed on
	// every create and edit; both entry modes resolve into this one form
	// before anything reaches the projection engine.
	Instrument struct {
		ID                   int64
		Name                 string
		Kind                 Kind
		Principal            float64
		AnnualRate           float64 // nominal, as a fraction in [0,1]
		StartDate            Date
		MaturityDate         Date
		CompoundingFrequency int // 1, 2, 4 or 12; meaningful when not payout
		MonthlyContribution  float64
		HasPayout            bool
		PayoutFrequency      int // 1, 2, 4 or 12; meaningful when payout

		TotalContributions float64
		MaturityValue      float64
		InterestEarned     float64
	}
)

var (
	ErrValidation        = errors.New("invalid instrument")
	ErrEmptyName         = fmt.Errorf("%w: empty name", ErrValidation)
	ErrNegativePrincipal = fmt.Errorf("%w: principal must be >= 0", ErrValidation)
	ErrRateOutOfRange    = fmt.Errorf("%w: annual rate must be in [0,1]", ErrValidation)
	ErrMaturityNotAfter  = fmt.Errorf("%w: maturity date must be after start date", ErrValidation)
	ErrBadFrequency      = fmt.Errorf("%w: frequency must be 1, 2, 4 or 12", ErrValidation)
	ErrNegativeContrib   = fmt.Errorf("%w: monthly contribution must be >= 0", ErrValidation)
)

func validFrequency(f int) bool {
	switch f {
	case 1, 2, 4, 12:
		return true
	}
	return false
}

func (k Kind) Validate() error {
	switch k {
	case FixedDeposit, RecurringDeposit, RetirementAccount, Other:
		return nil
	}
	return fmt.Errorf("%w: unknown kind %q", ErrValidation, string(k))
}

// Validate rejects instruments that must never reach the projector.
func (in Instrument) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if err := in.Kind.Validate(); err != nil {
		return err
	}
	if in.Principal < 0 {
		return ErrNegativePrincipal
	}
	if in.AnnualRate < 0 || in.AnnualRate > 1 {
		return ErrRateOutOfRange
	}
	if in.StartDate.IsZero() || in.MaturityDate.IsZero() {
		return fmt.Errorf("%w: start and maturity dates are required", ErrValidation)
	}
	if !in.MaturityDate.After(in.StartDate) {
		return ErrMaturityNotAfter
	}
	if in.MonthlyContribution < 0 {
		return ErrNegativeContrib
	}
	if in.HasPayout {
		if !validFrequency(in.PayoutFrequency) {
			return ErrBadFrequency
		}
	} else if !validFrequency(in.CompoundingFrequency) {
		return ErrBadFrequency
	}
	return nil
}

// State derives the lifecycle phase relative to today. It only gates whether
// the projector is called with a growing or frozen end date.
func (in Instrument) State(today Date) LifecycleState {
	switch {
	case today.Before(in.StartDate):
		return Upcoming
	case today.After(in.MaturityDate):
		return Matured
	default:
		return Active
	}
}

// termMonths is the whole-month life of the instrument.
func (in Instrument) termMonths() int {
	return MonthsBetween(in.StartDate, in.MaturityDate)
}

// ValueAt returns the instrument's projected value on the given date at the
// given (already shocked, non-negative) annual rate. Once the instrument has
// matured its value freezes at the maturity value instead of continuing to grow.
func (in Instrument) ValueAt(date Date, annualRate float64) float64 {
	end := date
	if end.After(in.MaturityDate) {
		end = in.MaturityDate
	}
	if in.HasPayout {
		return PayoutValue(in.Principal, in.StartDate, end, in.MonthlyContribution)
	}
	return FutureValue(in.Principal, annualRate, in.StartDate, end, in.CompoundingFrequency, in.MonthlyContribution)
}
