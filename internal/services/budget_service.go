package services

import (
	"context"
	"fmt"
	"log/slog"

	"nestegg/internal/core"
	"nestegg/internal/ledger"
)

// BudgetService turns ledger data into monthly budget-vs-spend rows.
type BudgetService struct {
	ledger     ledger.Reader
	thresholds core.StatusThresholds
}

func NewBudgetService(lr ledger.Reader, th core.StatusThresholds) *BudgetService {
	return &BudgetService{ledger: lr, thresholds: th}
}

// MonthlyReport fetches budgets, limits and withdrawals from the ledger and
// aggregates them into one row per budget per month across [from, to].
func (s *BudgetService) MonthlyReport(ctx context.Context, from, to, today core.Date) ([]core.MonthlyBudgetRow, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report range end %s before start %s", core.ErrValidation, to, from)
	}

	budgets, err := s.ledger.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	limits, err := s.ledger.ListLimits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list limits: %w", err)
	}
	txns, err := s.ledger.ListWithdrawals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}

	rows := core.MonthlyBudgetRows(budgets, limits, txns, from, to, today, s.thresholds)
	slog.InfoContext(ctx, "Budget report built",
		"budgets", len(budgets), "withdrawals", len(txns), "rows", len(rows))
	return rows, nil
}
