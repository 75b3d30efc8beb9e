package domain

type OperationType string

const (
	Income  OperationType = "income"
	Expense OperationType = "expense"
)

// OperationTypes lists every operation type in catalog order.
var OperationTypes = []OperationType{Income, Expense}

var incomeCategories = []string{"salary", "freelance", "investment", "other"}

var expenseCategories = []string{"food", "transport", "entertainment", "health", "education", "other"}

func IsValidOperationType(t string) bool {
	switch OperationType(t) {
	case Income, Expense:
		return true
	}
	return false
}

// Categories returns a copy of the ordered catalog list for t. Unknown types
// have no categories.
func Categories(t OperationType) []string {
	var src []string
	switch t {
	case Income:
		src = incomeCategories
	case Expense:
		src = expenseCategories
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func IsValidCategory(t OperationType, category string) bool {
	for _, c := range Categories(t) {
		if c == category {
			return true
		}
	}
	return false
}

type Catalog struct {
	Income  []string `json:"income,omitempty"`
	Expense []string `json:"expense,omitempty"`
}

func CategoryCatalog() Catalog {
	return Catalog{
		Income:  Categories(Income),
		Expense: Categories(Expense),
	}
}
