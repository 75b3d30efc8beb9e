package interfaces

import (
	"log/slog"
	"net/http"

	"github.com/sebuszqo/MyFinance/internal/auth"
	financeErrors "github.com/sebuszqo/MyFinance/internal/finance/errors"
)

type (
	respondJSONFunc  func(w http.ResponseWriter, status int, payload interface{})
	respondErrorFunc func(w http.ResponseWriter, status int, message string)
)

// responder is shared by the finance handlers.
type responder struct {
	respondJSON  respondJSONFunc
	respondError respondErrorFunc
	logger       *slog.Logger
}

func newResponder(respondJSON respondJSONFunc, respondError respondErrorFunc, logger *slog.Logger) responder {
	if respondJSON == nil || respondError == nil || logger == nil {
		panic("response functions and logger must not be nil")
	}
	return responder{respondJSON: respondJSON, respondError: respondError, logger: logger}
}

// userID reports whether the request carries an authenticated user and
// answers 401 when it does not.
func (h responder) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, auth.ErrUnauthorized.Error())
		return "", false
	}
	return userID, true
}

// fail maps validation errors to 400 with their message. Anything else is
// logged and reported as a generic 500.
func (h responder) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if financeErrors.IsValidationError(err) {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), msg, "error", err)
	h.respondError(w, http.StatusInternalServerError, "Internal server error")
}
