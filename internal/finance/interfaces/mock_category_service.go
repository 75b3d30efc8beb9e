package interfaces

import (
	"errors"

	"github.com/sebuszqo/MyFinance/internal/finance/domain"
)

type MockCategoryService struct {
	catalog    domain.Catalog
	shouldFail bool
}

func (m *MockCategoryService) GetCategories(categoryType string) (domain.Catalog, error) {
	if m.shouldFail {
		return domain.Catalog{}, errors.New("service error")
	}
	return m.catalog, nil
}
