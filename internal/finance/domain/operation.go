package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sebuszqo/MyFinance/internal/finance/errors"
	"github.com/shopspring/decimal"
)

// DateLayout is the only accepted operation date format. Reports compare
// dates as plain strings, which is correct only for this zero-padded layout.
const DateLayout = "2006-01-02"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Operation struct {
	ID          string          `json:"id"`
	UserID      string          `json:"-"`
	Type        OperationType   `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// OperationInput carries a not yet validated operation. A nil Amount means
// the field was not sent or was an empty string.
type OperationInput struct {
	Type        string           `json:"type"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    string           `json:"category"`
	Description *string          `json:"description"`
	Date        string           `json:"date"`
}

func (in *OperationInput) UnmarshalJSON(data []byte) error {
	type fields OperationInput
	aux := struct {
		*fields
		Amount json.RawMessage `json:"amount"`
	}{fields: (*fields)(in)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	amount, err := decodeAmount(aux.Amount)
	if err != nil {
		return err
	}
	in.Amount = amount
	return nil
}

// Validate runs every balance independent check in order: required fields,
// type and category, date, amount sign and range.
func (in OperationInput) Validate() error {
	if in.Type == "" || in.Amount == nil || in.Amount.IsZero() || in.Category == "" || in.Date == "" {
		return errors.ErrMissingFields
	}
	if !IsValidOperationType(in.Type) {
		return errors.ErrInvalidType
	}
	if !IsValidCategory(OperationType(in.Type), in.Category) {
		return errors.ErrInvalidCategory
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return errors.ErrInvalidDate
	}
	if !in.Amount.IsPositive() {
		return errors.ErrInvalidAmount
	}
	if !amountInRange(*in.Amount) {
		return errors.ErrAmountOutOfRange
	}
	return nil
}

// Signed returns the balance delta of the operation.
func (o Operation) Signed() decimal.Decimal {
	if o.Type == Expense {
		return o.Amount.Neg()
	}
	return o.Amount
}

// LedgerRepository stores balances, operations and budgets per user.
// Operations come back date descending, newest insert first on equal dates.
// Budgets come back in creation order.
type LedgerRepository interface {
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
	Operations(ctx context.Context, userID string) ([]Operation, error)
	// ApplyOperation stores op, sets the balance to newBalance and, when
	// budgetID is not empty, adds op.Amount to that budget's spent, all at once.
	ApplyOperation(ctx context.Context, op Operation, newBalance decimal.Decimal, budgetID string) error
	Budgets(ctx context.Context, userID string) ([]Budget, error)
	SaveBudget(ctx context.Context, budget Budget) error
}
