package ledger

import (
	"context"

	"nestegg/internal/core"
)

// Ports for the external ledger the budget report reads from.
type (
	BudgetReader interface {
		ListBudgets(ctx context.Context) ([]core.Budget, error)
	}

	LimitReader interface {
		ListLimits(ctx context.Context) ([]core.BudgetLimit, error)
	}

	// TransactionReader returns withdrawals only; deposits and transfers are
	// filtered out by the adapter before they reach the aggregation.
	TransactionReader interface {
		ListWithdrawals(ctx context.Context, from, to core.Date) ([]core.Transaction, error)
	}

	// Reader bundles the three ports for callers that need the whole ledger.
	Reader interface {
		BudgetReader
		LimitReader
		TransactionReader
	}
)
