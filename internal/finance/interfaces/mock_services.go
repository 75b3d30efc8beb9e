package interfaces

import (
	"context"
	"errors"

	"github.com/sebuszqo/MyFinance/internal/finance/domain"
	"github.com/sebuszqo/MyFinance/internal/user"
	"github.com/shopspring/decimal"
)

type MockOperationService struct {
	err        error
	gotUserID  string
	gotInput   domain.OperationInput
	newBalance decimal.Decimal
}

func (m *MockOperationService) RecordOperation(_ context.Context, userID string, in domain.OperationInput) (domain.Operation, decimal.Decimal, error) {
	m.gotUserID = userID
	m.gotInput = in
	if m.err != nil {
		return domain.Operation{}, decimal.Zero, m.err
	}
	if err := in.Validate(); err != nil {
		return domain.Operation{}, decimal.Zero, err
	}
	op := domain.Operation{
		ID:       "op-1",
		UserID:   userID,
		Type:     domain.OperationType(in.Type),
		Amount:   *in.Amount,
		Category: in.Category,
		Date:     in.Date,
	}
	return op, m.newBalance, nil
}

type MockBudgetService struct {
	err       error
	gotUserID string
}

func (m *MockBudgetService) CreateBudget(_ context.Context, userID string, in domain.BudgetInput) (domain.Budget, error) {
	m.gotUserID = userID
	if m.err != nil {
		return domain.Budget{}, m.err
	}
	if err := in.Validate(); err != nil {
		return domain.Budget{}, err
	}
	return domain.Budget{ID: "b-1", UserID: userID, Category: in.Category, Limit: *in.Limit, Period: in.Period, Spent: decimal.Zero}, nil
}

type MockReportService struct {
	err              error
	gotStart, gotEnd string
	report           domain.Report
}

func (m *MockReportService) GenerateReport(_ context.Context, _ string, startDate, endDate string) (domain.Report, error) {
	m.gotStart, m.gotEnd = startDate, endDate
	return m.report, m.err
}

type MockUserLookup struct {
	users map[string]*user.User
	err   error
}

func (m *MockUserLookup) GetUserByID(_ context.Context, id string) (*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

type MockLedgerReader struct {
	balance    decimal.Decimal
	operations []domain.Operation
	budgets    []domain.Budget
	failBudget bool
}

func (m *MockLedgerReader) Balance(context.Context, string) (decimal.Decimal, error) {
	return m.balance, nil
}

func (m *MockLedgerReader) Operations(context.Context, string) ([]domain.Operation, error) {
	return m.operations, nil
}

func (m *MockLedgerReader) Budgets(context.Context, string) ([]domain.Budget, error) {
	if m.failBudget {
		return nil, errors.New("budgets unavailable")
	}
	return m.budgets, nil
}
