package interfaces

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/MyFinance/internal/finance/domain"
)

type ReportServiceInterface interface {
	GenerateReport(ctx context.Context, userID, startDate, endDate string) (domain.Report, error)
}

type ReportHandler struct {
	responder
	service ReportServiceInterface
}

func NewReportHandler(
	service ReportServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
	logger *slog.Logger,
) *ReportHandler {
	if service == nil {
		panic("Service must not be nil")
	}
	return &ReportHandler{
		responder: newResponder(respondJSON, respondError, logger),
		service:   service,
	}
}

// GetReport takes optional startDate and endDate query parameters. The range
// is applied only when both are present.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	report, err := h.service.GenerateReport(r.Context(), userID, query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		h.fail(w, r, "could not generate report", err)
		return
	}

	h.respondJSON(w, http.StatusOK, report)
}
