package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sebuszqo/MyFinance/internal/finance/domain"
	financeErrors "github.com/sebuszqo/MyFinance/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type BudgetMatcher interface {
	MatchExpense(ctx context.Context, userID, category string) (*domain.Budget, error)
}

type LedgerService struct {
	repo    domain.LedgerRepository
	budgets BudgetMatcher
	locker  *UserLocker
	logger  *slog.Logger
}

func NewLedgerService(repo domain.LedgerRepository, budgets BudgetMatcher, locker *UserLocker, logger *slog.Logger) *LedgerService {
	return &LedgerService{repo: repo, budgets: budgets, locker: locker, logger: logger}
}

// RecordOperation validates in and, on success, stores the operation, moves
// the balance and posts expenses to the first budget of the same category.
// Nothing is written when any check fails.
func (s *LedgerService) RecordOperation(ctx context.Context, userID string, in domain.OperationInput) (domain.Operation, decimal.Decimal, error) {
	if err := in.Validate(); err != nil {
		return domain.Operation{}, decimal.Zero, err
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	balance, err := s.repo.Balance(ctx, userID)
	if err != nil {
		return domain.Operation{}, decimal.Zero, fmt.Errorf("could not read balance: %w", err)
	}

	opType := domain.OperationType(in.Type)
	amount := *in.Amount
	if opType == domain.Expense && amount.GreaterThan(balance) {
		return domain.Operation{}, decimal.Zero, financeErrors.ErrInsufficientFunds
	}

	description := ""
	if in.Description != nil {
		description = *in.Description
	}

	op := domain.Operation{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        opType,
		Amount:      amount,
		Category:    in.Category,
		Description: description,
		Date:        in.Date,
	}

	var budgetID string
	if opType == domain.Expense {
		budget, err := s.budgets.MatchExpense(ctx, userID, op.Category)
		if err != nil {
			return domain.Operation{}, decimal.Zero, fmt.Errorf("could not match budget: %w", err)
		}
		if budget != nil {
			budgetID = budget.ID
		}
	}

	newBalance := balance.Add(op.Signed())
	if err := s.repo.ApplyOperation(ctx, op, newBalance, budgetID); err != nil {
		return domain.Operation{}, decimal.Zero, fmt.Errorf("could not record operation: %w", err)
	}

	s.logger.DebugContext(ctx, "operation recorded",
		"user_id", userID, "operation_id", op.ID, "type", op.Type, "budget_id", budgetID)
	return op, newBalance, nil
}

func (s *LedgerService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.repo.Balance(ctx, userID)
}

func (s *LedgerService) Operations(ctx context.Context, userID string) ([]domain.Operation, error) {
	return s.repo.Operations(ctx, userID)
}
