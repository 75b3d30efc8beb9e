package domain

import (
	"encoding/json"

	"github.com/sebuszqo/MyFinance/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type Budget struct {
	ID       string          `json:"id"`
	UserID   string          `json:"-"`
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
	Period   string          `json:"period"`
	Spent    decimal.Decimal `json:"spent"`
}

type BudgetInput struct {
	Category string           `json:"category"`
	Limit    *decimal.Decimal `json:"limit"`
	Period   string           `json:"period"`
}

func (in *BudgetInput) UnmarshalJSON(data []byte) error {
	type fields BudgetInput
	aux := struct {
		*fields
		Limit json.RawMessage `json:"limit"`
	}{fields: (*fields)(in)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	limit, err := decodeAmount(aux.Limit)
	if err != nil {
		return err
	}
	in.Limit = limit
	return nil
}

func (in BudgetInput) Validate() error {
	if in.Category == "" || in.Limit == nil || in.Limit.IsZero() || in.Period == "" {
		return errors.ErrMissingFields
	}
	if !in.Limit.IsPositive() {
		return errors.ErrInvalidAmount
	}
	if !amountInRange(*in.Limit) {
		return errors.ErrAmountOutOfRange
	}
	return nil
}

// FirstMatchingBudget returns the first budget in the given order whose
// category equals category. Period is ignored.
func FirstMatchingBudget(budgets []Budget, category string) *Budget {
	for i := range budgets {
		if budgets[i].Category == category {
			return &budgets[i]
		}
	}
	return nil
}
