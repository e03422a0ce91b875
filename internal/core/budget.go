package core

const (
	StatusFuture      BudgetStatus = "Future"
	StatusNoBudget    BudgetStatus = "NoBudget"
	StatusOverBudget  BudgetStatus = "OverBudget"
	StatusOnTrack     BudgetStatus = "OnTrack"
	StatusUnderBudget BudgetStatus = "UnderBudget"
)

type (
	// BudgetStatus classifies one budget-month against its prorated limit.
	BudgetStatus string

	// Budget identifies a spending budget in the external ledger.
	Budget struct {
		ID   string
		Name string
	}

	// BudgetLimit ties an amount to an inclusive day interval. Read-only
	// input to proration, never mutated here.
	BudgetLimit struct {
		BudgetID string
		Amount   float64
		Interval Interval
		Currency string
	}

	// Transaction is a ledger withdrawal already filtered by the adapter.
	Transaction struct {
		BudgetName string
		Date       Date
		Amount     float64
	}

	// MonthlyBudgetRow is one budget's prorated-vs-actual figures for one month.
	MonthlyBudgetRow struct {
		MonthLabel   string
		BudgetName   string
		Budgeted     float64
		Spent        float64
		Remaining    float64
		Deviation    float64
		DeviationPct float64
		Status       BudgetStatus
	}

	// StatusThresholds configures budget status classification. The on-track
	// floor is the deviation percentage above which spending still counts as
	// on track (spending at least that share of the budget without exceeding it).
	StatusThresholds struct {
		OnTrackFloorPct float64
	}
)

// DefaultStatusThresholds treats spending within 20% under budget as on track.
func DefaultStatusThresholds() StatusThresholds {
	return StatusThresholds{OnTrackFloorPct: -20}
}

func classify(budgeted, deviationPct float64, monthStarted bool, th StatusThresholds) BudgetStatus {
	switch {
	case !monthStarted:
		return StatusFuture
	case budgeted == 0:
		return StatusNoBudget
	case deviationPct > 0:
		return StatusOverBudget
	case deviationPct > th.OnTrackFloorPct:
		return StatusOnTrack
	default:
		return StatusUnderBudget
	}
}

// MonthlyBudgetRows drives proration once per (budget, month) pair across the
// requested range, sums matching withdrawals for actual spend and classifies
// each row. Rows are ordered month-major, preserving budget input order.
func MonthlyBudgetRows(budgets []Budget, limits []BudgetLimit, txns []Transaction, from, to Date, today Date, th StatusThresholds) []MonthlyBudgetRow {
	if to.Before(from) {
		return nil
	}

	limitsByBudget := make(map[string][]BudgetLimit, len(budgets))
	for _, l := range limits {
		limitsByBudget[l.BudgetID] = append(limitsByBudget[l.BudgetID], l)
	}

	var rows []MonthlyBudgetRow
	last := MonthOf(to)
	for m := MonthOf(from); !m.First.After(last.First); m = m.Next() {
		monthStarted := !m.First.After(today)
		for _, b := range budgets {
			var budgeted float64
			for _, l := range limitsByBudget[b.ID] {
				budgeted += Prorate(l.Amount, l.Interval, m)
			}
			var spent float64
			for _, t := range txns {
				if t.BudgetName == b.Name && m.Contains(t.Date) {
					spent += t.Amount
				}
			}

			deviation := spent - budgeted
			var deviationPct float64
			if budgeted != 0 {
				deviationPct = deviation / budgeted * 100
			}

			rows = append(rows, MonthlyBudgetRow{
				MonthLabel:   m.Label(),
				BudgetName:   b.Name,
				Budgeted:     round2(budgeted),
				Spent:        round2(spent),
				Remaining:    round2(budgeted - spent),
				Deviation:    round2(deviation),
				DeviationPct: deviationPct,
				Status:       classify(budgeted, deviationPct, monthStarted, th),
			})
		}
	}
	return rows
}
