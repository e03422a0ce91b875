package memory

import (
	"context"
	"sync"

	"nestegg/internal/core"
	ports "nestegg/internal/ledger"
)

// Store is an in-memory ledger for tests and local development without a
// spreadsheet. Reads return copies, so callers cannot mutate the store.
type Store struct {
	mu      sync.Mutex
	budgets []core.Budget
	limits  []core.BudgetLimit
	txns    []core.Transaction
}

var _ ports.Reader = (*Store)(nil)

func New(budgets []core.Budget, limits []core.BudgetLimit, txns []core.Transaction) *Store {
	return &Store{
		budgets: append([]core.Budget(nil), budgets...),
		limits:  append([]core.BudgetLimit(nil), limits...),
		txns:    append([]core.Transaction(nil), txns...),
	}
}

func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.budgets...), nil
}

func (s *Store) ListLimits(_ context.Context) ([]core.BudgetLimit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.BudgetLimit(nil), s.limits...), nil
}

func (s *Store) ListWithdrawals(_ context.Context, from, to core.Date) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.txns {
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// AddWithdrawal records a withdrawal; test helper mirror of what the sheet
// adapter would read back.
func (s *Store) AddWithdrawal(t core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns = append(s.txns, t)
}
