package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/MyFinance/internal/user"
	"github.com/shopspring/decimal"
)

type BalanceReader interface {
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
}

type Handler struct {
	authService Service
	userService user.Service
	balances    BalanceReader
	logger      *slog.Logger
}

func NewHandler(authService Service, userService user.Service, balances BalanceReader, logger *slog.Logger) *Handler {
	return &Handler{
		authService: authService,
		userService: userService,
		balances:    balances,
		logger:      logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserSummary struct {
	ID      string          `json:"id"`
	Email   string          `json:"email"`
	Balance decimal.Decimal `json:"balance"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) summary(ctx context.Context, u *user.User) (UserSummary, error) {
	balance, err := h.balances.Balance(ctx, u.ID)
	if err != nil {
		return UserSummary{}, err
	}
	return UserSummary{ID: u.ID, Email: u.Email, Balance: balance}, nil
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg, "error", err)
	respondError(w, http.StatusInternalServerError, ErrInternalError.Error())
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, newUser, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrMissingFields) || errors.Is(err, ErrInvalidEmail) || errors.Is(err, ErrEmailAlreadyExists) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, r, "register failed", err)
		return
	}

	summary, err := h.summary(r.Context(), newUser)
	if err != nil {
		h.internalError(w, r, "could not read balance", err)
		return
	}
	respondJSON(w, http.StatusCreated, sessionResponse{Token: token, User: summary})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, existingUser, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.internalError(w, r, "login failed", err)
		return
	}

	summary, err := h.summary(r.Context(), existingUser)
	if err != nil {
		h.internalError(w, r, "could not read balance", err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{Token: token, User: summary})
}

// HandleLogout is not behind the session middleware: unknown or missing
// tokens still log out successfully.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.authService.Logout(BearerToken(r))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrUnauthorized.Error())
		return
	}

	existingUser, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, ErrUnauthorized.Error())
			return
		}
		h.internalError(w, r, "could not load user", err)
		return
	}

	summary, err := h.summary(r.Context(), existingUser)
	if err != nil {
		h.internalError(w, r, "could not read balance", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
