package domain

import "github.com/shopspring/decimal"

type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type CategoryBreakdown struct {
	Income  []CategoryAmount `json:"income"`
	Expense []CategoryAmount `json:"expense"`
}

type Report struct {
	TotalIncome  decimal.Decimal   `json:"totalIncome"`
	TotalExpense decimal.Decimal   `json:"totalExpense"`
	ByCategory   CategoryBreakdown `json:"byCategory"`
}

// InDateRange keeps operations dated within [startDate, endDate]. Dates are
// compared as strings. When either bound is empty every operation is kept.
func InDateRange(operations []Operation, startDate, endDate string) []Operation {
	if startDate == "" || endDate == "" {
		return operations
	}
	filtered := make([]Operation, 0, len(operations))
	for _, op := range operations {
		if op.Date >= startDate && op.Date <= endDate {
			filtered = append(filtered, op)
		}
	}
	return filtered
}

// BuildReport aggregates operations into totals and a per category breakdown
// that lists every catalog category, zero amounts included.
func BuildReport(operations []Operation) Report {
	sums := map[OperationType]map[string]decimal.Decimal{
		Income:  {},
		Expense: {},
	}
	report := Report{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	for _, op := range operations {
		switch op.Type {
		case Income:
			report.TotalIncome = report.TotalIncome.Add(op.Amount)
		case Expense:
			report.TotalExpense = report.TotalExpense.Add(op.Amount)
		default:
			continue
		}
		sums[op.Type][op.Category] = sums[op.Type][op.Category].Add(op.Amount)
	}

	report.ByCategory.Income = breakdown(Income, sums[Income])
	report.ByCategory.Expense = breakdown(Expense, sums[Expense])
	return report
}

func breakdown(t OperationType, sums map[string]decimal.Decimal) []CategoryAmount {
	categories := Categories(t)
	out := make([]CategoryAmount, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryAmount{Category: c, Amount: sums[c]})
	}
	return out
}
