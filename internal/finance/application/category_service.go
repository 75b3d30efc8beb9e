package application

import (
	"fmt"

	"github.com/sebuszqo/MyFinance/internal/finance/domain"
)

type CategoryService struct{}

func NewCategoryService() *CategoryService {
	return &CategoryService{}
}

// GetCategories returns the catalog, restricted to one operation type when
// categoryType is set.
func (s *CategoryService) GetCategories(categoryType string) (domain.Catalog, error) {
	catalog := domain.CategoryCatalog()
	switch domain.OperationType(categoryType) {
	case "":
		return catalog, nil
	case domain.Income:
		return domain.Catalog{Income: catalog.Income}, nil
	case domain.Expense:
		return domain.Catalog{Expense: catalog.Expense}, nil
	}
	return domain.Catalog{}, fmt.Errorf("unknown operation type %q", categoryType)
}
