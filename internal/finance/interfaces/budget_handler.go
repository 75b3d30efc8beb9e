package interfaces

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/MyFinance/internal/finance/domain"
)

type BudgetServiceInterface interface {
	CreateBudget(ctx context.Context, userID string, in domain.BudgetInput) (domain.Budget, error)
}

type BudgetHandler struct {
	responder
	service BudgetServiceInterface
}

func NewBudgetHandler(
	service BudgetServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
	logger *slog.Logger,
) *BudgetHandler {
	if service == nil {
		panic("Service must not be nil")
	}
	return &BudgetHandler{
		responder: newResponder(respondJSON, respondError, logger),
		service:   service,
	}
}

func (h *BudgetHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var in domain.BudgetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	budget, err := h.service.CreateBudget(r.Context(), userID, in)
	if err != nil {
		h.fail(w, r, "could not create budget", err)
		return
	}

	h.respondJSON(w, http.StatusOK, budget)
}
