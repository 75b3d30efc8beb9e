package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sebuszqo/MyFinance/internal/auth"
	"github.com/sebuszqo/MyFinance/internal/finance/interfaces"
	"github.com/sebuszqo/MyFinance/internal/user"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.InfoContext(r.Context(), "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "Path not found")
}

type Server struct {
	router           *http.ServeMux
	authHandler      *auth.Handler
	authService      auth.Service
	userService      user.Service
	operationHandler *interfaces.OperationHandler
	budgetHandler    *interfaces.BudgetHandler
	reportHandler    *interfaces.ReportHandler
	categoryHandler  *interfaces.CategoryHandler
	profileHandler   *interfaces.ProfileHandler
	health           func(ctx context.Context) map[string]string
	legacyRoutes     bool
	logger           *slog.Logger
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if stats := s.health(r.Context()); stats["status"] != "up" {
			s.logger.WarnContext(r.Context(), "store not ready", "error", stats["error"])
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) RegisterRoutes() {
	router := http.NewServeMux()
	protected := s.authService.SessionMiddleware()

	// Public routes
	router.Handle("POST /api/auth/register", http.HandlerFunc(s.authHandler.HandleRegister))
	router.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	router.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	router.Handle("GET /api/categories", http.HandlerFunc(s.categoryHandler.GetCategories))
	router.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Session protected routes
	router.Handle("GET /api/auth/me", protected(http.HandlerFunc(s.authHandler.HandleMe)))
	router.Handle("GET /api/user", protected(http.HandlerFunc(s.profileHandler.GetProfile)))
	router.Handle("POST /api/operations", protected(http.HandlerFunc(s.operationHandler.CreateOperation)))
	router.Handle("GET /api/reports", protected(http.HandlerFunc(s.reportHandler.GetReport)))
	router.Handle("POST /api/budgets", protected(http.HandlerFunc(s.budgetHandler.CreateBudget)))

	// Legacy routes address the user by id and carry no session
	if s.legacyRoutes {
		byPath := interfaces.PathUserMiddleware(s.userService, respondError)
		router.Handle("GET /api/user/{userID}", byPath(http.HandlerFunc(s.profileHandler.GetProfile)))
		router.Handle("POST /api/user/{userID}/operations", byPath(http.HandlerFunc(s.operationHandler.CreateOperation)))
		router.Handle("GET /api/user/{userID}/reports", byPath(http.HandlerFunc(s.reportHandler.GetReport)))
		router.Handle("POST /api/user/{userID}/budgets", byPath(http.HandlerFunc(s.budgetHandler.CreateBudget)))
	}

	router.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = router
}

func (s *Server) Handler() http.Handler {
	return loggingMiddleware(s.logger, s.router)
}
