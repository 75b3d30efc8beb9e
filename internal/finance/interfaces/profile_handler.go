package interfaces

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/MyFinance/internal/finance/domain"
	"github.com/sebuszqo/MyFinance/internal/user"
	"github.com/shopspring/decimal"
)

type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*user.User, error)
}

type LedgerReader interface {
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
	Operations(ctx context.Context, userID string) ([]domain.Operation, error)
}

type BudgetReader interface {
	Budgets(ctx context.Context, userID string) ([]domain.Budget, error)
}

type ProfileHandler struct {
	responder
	users   UserLookup
	ledger  LedgerReader
	budgets BudgetReader
}

func NewProfileHandler(
	users UserLookup,
	ledger LedgerReader,
	budgets BudgetReader,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
	logger *slog.Logger,
) *ProfileHandler {
	if users == nil || ledger == nil || budgets == nil {
		panic("Services must not be nil")
	}
	return &ProfileHandler{
		responder: newResponder(respondJSON, respondError, logger),
		users:     users,
		ledger:    ledger,
		budgets:   budgets,
	}
}

type Profile struct {
	ID         string             `json:"id"`
	Email      string             `json:"email"`
	Balance    decimal.Decimal    `json:"balance"`
	Operations []domain.Operation `json:"operations"`
	Budgets    []domain.Budget    `json:"budgets"`
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	profile, err := h.load(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			h.respondError(w, http.StatusNotFound, user.ErrUserNotFound.Error())
			return
		}
		h.fail(w, r, "could not load profile", err)
		return
	}

	h.respondJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) load(ctx context.Context, userID string) (Profile, error) {
	u, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	balance, err := h.ledger.Balance(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	operations, err := h.ledger.Operations(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	budgets, err := h.budgets.Budgets(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		ID:         u.ID,
		Email:      u.Email,
		Balance:    balance,
		Operations: operations,
		Budgets:    budgets,
	}, nil
}
