package application

import (
	"context"
	"fmt"

	"github.com/sebuszqo/MyFinance/internal/finance/domain"
)

type OperationReader interface {
	Operations(ctx context.Context, userID string) ([]domain.Operation, error)
}

type ReportService struct {
	operations OperationReader
}

func NewReportService(operations OperationReader) *ReportService {
	return &ReportService{operations: operations}
}

// GenerateReport aggregates the user's ledger. The date range applies only
// when both bounds are given.
func (s *ReportService) GenerateReport(ctx context.Context, userID, startDate, endDate string) (domain.Report, error) {
	operations, err := s.operations.Operations(ctx, userID)
	if err != nil {
		return domain.Report{}, fmt.Errorf("could not load operations: %w", err)
	}
	return domain.BuildReport(domain.InDateRange(operations, startDate, endDate)), nil
}
