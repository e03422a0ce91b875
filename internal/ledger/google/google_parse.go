package google

import (
	"fmt"
	"strings"

	"nestegg/internal/core"

	"github.com/shopspring/decimal"
)

// Budgets sheet columns: A id, B name.
func parseBudgets(rows [][]any) ([]core.Budget, error) {
	var out []core.Budget
	for i, row := range rows {
		cols := toStrings(row)
		if isHeaderOrBlank(i, cols) {
			continue
		}
		if len(cols) < 2 || cols[0] == "" || cols[1] == "" {
			return nil, fmt.Errorf("%w: budgets row %d is incomplete: %v", core.ErrData, i+1, cols)
		}
		out = append(out, core.Budget{ID: cols[0], Name: cols[1]})
	}
	return out, nil
}

// Limits sheet columns: A budget_id, B amount, C start_date, D end_date, E currency.
func parseLimits(rows [][]any) ([]core.BudgetLimit, error) {
	var out []core.BudgetLimit
	for i, row := range rows {
		cols := toStrings(row)
		if isHeaderOrBlank(i, cols) {
			continue
		}
		if len(cols) < 4 || cols[0] == "" {
			return nil, fmt.Errorf("%w: limits row %d is incomplete: %v", core.ErrData, i+1, cols)
		}
		amount, err := parseAmount(cols[1])
		if err != nil {
			return nil, fmt.Errorf("limits row %d: %w", i+1, err)
		}
		start, err := core.ParseDate(cols[2])
		if err != nil {
			return nil, fmt.Errorf("limits row %d: %w", i+1, err)
		}
		end, err := core.ParseDate(cols[3])
		if err != nil {
			return nil, fmt.Errorf("limits row %d: %w", i+1, err)
		}
		iv := core.Interval{Start: start, End: end}
		if err := iv.Validate(); err != nil {
			return nil, fmt.Errorf("limits row %d: %w", i+1, err)
		}
		currency := "EUR"
		if len(cols) >= 5 && cols[4] != "" {
			currency = cols[4]
		}
		out = append(out, core.BudgetLimit{
			BudgetID: cols[0],
			Amount:   amount,
			Interval: iv,
			Currency: currency,
		})
	}
	return out, nil
}

// Transactions sheet columns: A budget name, B date, C amount, D type.
// Only rows typed "withdrawal" inside [from, to] are kept.
func parseTransactions(rows [][]any, from, to core.Date) ([]core.Transaction, error) {
	var out []core.Transaction
	for i, row := range rows {
		cols := toStrings(row)
		if isHeaderOrBlank(i, cols) {
			continue
		}
		if len(cols) < 4 || cols[0] == "" {
			return nil, fmt.Errorf("%w: transactions row %d is incomplete: %v", core.ErrData, i+1, cols)
		}
		if !strings.EqualFold(cols[3], "withdrawal") {
			continue
		}
		date, err := core.ParseDate(cols[1])
		if err != nil {
			return nil, fmt.Errorf("transactions row %d: %w", i+1, err)
		}
		if date.Before(from) || date.After(to) {
			continue
		}
		amount, err := parseAmount(cols[2])
		if err != nil {
			return nil, fmt.Errorf("transactions row %d: %w", i+1, err)
		}
		out = append(out, core.Transaction{
			BudgetName: cols[0],
			Date:       date,
			Amount:     amount,
		})
	}
	return out, nil
}

// parseAmount accepts sheet cell renderings of money: optional thousands
// separators and either "." or "," as the decimal mark.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", core.ErrData)
	}
	// "1.234,56" -> "1234.56"; "1,234.56" -> "1234.56"
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	} else {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: parse amount %q: %v", core.ErrData, s, err)
	}
	return d.InexactFloat64(), nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// isHeaderOrBlank skips fully empty rows anywhere, plus the first row when it
// is a label row: column A matching one of the known header names.
func isHeaderOrBlank(idx int, cols []string) bool {
	allEmpty := true
	for _, c := range cols {
		if c != "" {
			allEmpty = false
			break
		}
	}
	if allEmpty {
		return true
	}
	if idx == 0 && len(cols) > 0 {
		switch strings.ToLower(cols[0]) {
		case "id", "budget_id", "budget", "name":
			return true
		}
	}
	return false
}
