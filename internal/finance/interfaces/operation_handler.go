package interfaces

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/MyFinance/internal/finance/domain"
	"github.com/shopspring/decimal"
)

type OperationServiceInterface interface {
	RecordOperation(ctx context.Context, userID string, in domain.OperationInput) (domain.Operation, decimal.Decimal, error)
}

type OperationHandler struct {
	responder
	service OperationServiceInterface
}

func NewOperationHandler(
	service OperationServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
	logger *slog.Logger,
) *OperationHandler {
	if service == nil {
		panic("Service must not be nil")
	}
	return &OperationHandler{
		responder: newResponder(respondJSON, respondError, logger),
		service:   service,
	}
}

type operationResponse struct {
	Operation  domain.Operation `json:"operation"`
	NewBalance decimal.Decimal  `json:"newBalance"`
}

func (h *OperationHandler) CreateOperation(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var in domain.OperationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	op, newBalance, err := h.service.RecordOperation(r.Context(), userID, in)
	if err != nil {
		h.fail(w, r, "could not record operation", err)
		return
	}

	h.respondJSON(w, http.StatusOK, operationResponse{Operation: op, NewBalance: newBalance})
}
