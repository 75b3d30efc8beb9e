package infrastructure

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sebuszqo/MyFinance/internal/finance/domain"
	"github.com/shopspring/decimal"
)

type ledger struct {
	balance    decimal.Decimal
	operations []domain.Operation
	budgets    []domain.Budget
}

// MemoryLedgerRepository keeps every user's ledger in process memory.
type MemoryLedgerRepository struct {
	mu      sync.RWMutex
	ledgers map[string]*ledger
}

func NewMemoryLedgerRepository() *MemoryLedgerRepository {
	return &MemoryLedgerRepository{ledgers: make(map[string]*ledger)}
}

func (r *MemoryLedgerRepository) ledgerFor(userID string) *ledger {
	l, ok := r.ledgers[userID]
	if !ok {
		l = &ledger{balance: decimal.Zero}
		r.ledgers[userID] = l
	}
	return l
}

func (r *MemoryLedgerRepository) Balance(_ context.Context, userID string) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.ledgers[userID]
	if !ok {
		return decimal.Zero, nil
	}
	return l.balance, nil
}

func (r *MemoryLedgerRepository) Operations(_ context.Context, userID string) ([]domain.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.ledgers[userID]
	if !ok {
		return []domain.Operation{}, nil
	}
	out := make([]domain.Operation, len(l.operations))
	copy(out, l.operations)
	return out, nil
}

func (r *MemoryLedgerRepository) ApplyOperation(_ context.Context, op domain.Operation, newBalance decimal.Decimal, budgetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.ledgerFor(op.UserID)

	budgetIdx := -1
	if budgetID != "" {
		for i := range l.budgets {
			if l.budgets[i].ID == budgetID {
				budgetIdx = i
				break
			}
		}
		if budgetIdx < 0 {
			return fmt.Errorf("budget %s not found for user %s", budgetID, op.UserID)
		}
	}

	// first position whose date is not after op.Date keeps the slice date
	// descending and puts op ahead of older inserts with the same date
	pos := sort.Search(len(l.operations), func(i int) bool {
		return l.operations[i].Date <= op.Date
	})
	l.operations = append(l.operations, domain.Operation{})
	copy(l.operations[pos+1:], l.operations[pos:])
	l.operations[pos] = op

	l.balance = newBalance
	if budgetIdx >= 0 {
		l.budgets[budgetIdx].Spent = l.budgets[budgetIdx].Spent.Add(op.Amount)
	}
	return nil
}

func (r *MemoryLedgerRepository) Budgets(_ context.Context, userID string) ([]domain.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.ledgers[userID]
	if !ok {
		return []domain.Budget{}, nil
	}
	out := make([]domain.Budget, len(l.budgets))
	copy(out, l.budgets)
	return out, nil
}

func (r *MemoryLedgerRepository) SaveBudget(_ context.Context, budget domain.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.ledgerFor(budget.UserID)
	l.budgets = append(l.budgets, budget)
	return nil
}
