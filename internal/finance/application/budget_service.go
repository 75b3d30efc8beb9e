package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sebuszqo/MyFinance/internal/finance/domain"
	"github.com/shopspring/decimal"
)

type BudgetService struct {
	repo   domain.LedgerRepository
	locker *UserLocker
}

func NewBudgetService(repo domain.LedgerRepository, locker *UserLocker) *BudgetService {
	return &BudgetService{repo: repo, locker: locker}
}

func (s *BudgetService) CreateBudget(ctx context.Context, userID string, in domain.BudgetInput) (domain.Budget, error) {
	if err := in.Validate(); err != nil {
		return domain.Budget{}, err
	}

	budget := domain.Budget{
		ID:       uuid.NewString(),
		UserID:   userID,
		Category: in.Category,
		Limit:    *in.Limit,
		Period:   in.Period,
		Spent:    decimal.Zero,
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	if err := s.repo.SaveBudget(ctx, budget); err != nil {
		return domain.Budget{}, fmt.Errorf("could not save budget: %w", err)
	}
	return budget, nil
}

func (s *BudgetService) Budgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	return s.repo.Budgets(ctx, userID)
}

// MatchExpense returns the first budget, in creation order, that an expense
// in category is posted to. A nil budget means the expense is not tracked.
// Callers posting the expense must hold the user's lock.
func (s *BudgetService) MatchExpense(ctx context.Context, userID, category string) (*domain.Budget, error) {
	budgets, err := s.repo.Budgets(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.FirstMatchingBudget(budgets, category), nil
}
