package http

import (
	"net/http"

	"nestegg/internal/core"
)

type budgetRow struct {
	Month        string  `json:"month"`
	Budget       string  `json:"budget"`
	Budgeted     float64 `json:"budgeted"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
	Deviation    float64 `json:"deviation"`
	DeviationPct float64 `json:"deviation_pct"`
	Status       string  `json:"status"`
}

// handleBudgetReport builds the month-by-month budget-vs-spend table for the
// ?from=YYYY-MM-DD&to=YYYY-MM-DD range.
func (s *Server) handleBudgetReport(w http.ResponseWriter, r *http.Request) {
	if s.budgets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "ledger not configured"})
		return
	}

	q := r.URL.Query()
	from, err := core.ParseDate(q.Get("from"))
	if err != nil {
		writeBadRequest(w, r, "invalid from parameter, want YYYY-MM-DD")
		return
	}
	to, err := core.ParseDate(q.Get("to"))
	if err != nil {
		writeBadRequest(w, r, "invalid to parameter, want YYYY-MM-DD")
		return
	}

	rows, err := s.budgets.MonthlyReport(r.Context(), from, to, core.Today())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]budgetRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, budgetRow{
			Month:        row.MonthLabel,
			Budget:       row.BudgetName,
			Budgeted:     row.Budgeted,
			Spent:        row.Spent,
			Remaining:    row.Remaining,
			Deviation:    row.Deviation,
			DeviationPct: row.DeviationPct,
			Status:       string(row.Status),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
