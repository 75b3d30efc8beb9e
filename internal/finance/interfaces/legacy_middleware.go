package interfaces

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sebuszqo/MyFinance/internal/auth"
	"github.com/sebuszqo/MyFinance/internal/user"
)

// PathUserMiddleware resolves the user from the {userID} path segment
// instead of a session token. It backs the unauthenticated legacy routes.
func PathUserMiddleware(users UserLookup, respondError func(w http.ResponseWriter, status int, message string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.PathValue("userID")
			if _, err := uuid.Parse(userID); err != nil {
				respondError(w, http.StatusNotFound, user.ErrUserNotFound.Error())
				return
			}
			if _, err := users.GetUserByID(r.Context(), userID); err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					respondError(w, http.StatusNotFound, user.ErrUserNotFound.Error())
					return
				}
				respondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithUserID(r.Context(), userID)))
		})
	}
}
