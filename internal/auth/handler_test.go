package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBalances struct {
	balance decimal.Decimal
	err     error
}

func (s stubBalances) Balance(context.Context, string) (decimal.Decimal, error) {
	return s.balance, s.err
}

type testServer struct {
	mux     *http.ServeMux
	handler *Handler
}

func newTestServer(balances BalanceReader) testServer {
	svc, users := newTestAuthService()
	h := NewHandler(svc, users, balances, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", h.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", h.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", h.HandleLogout)
	mux.Handle("GET /api/auth/me", svc.SessionMiddleware()(http.HandlerFunc(h.HandleMe)))
	return testServer{mux: mux, handler: h}
}

func (s testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.mux.ServeHTTP(rr, req)
	return rr
}

type sessionBody struct {
	Token string `json:"token"`
	User  struct {
		ID      string          `json:"id"`
		Email   string          `json:"email"`
		Balance decimal.Decimal `json:"balance"`
	} `json:"user"`
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["error"]
}

func TestHandleRegister(t *testing.T) {
	s := newTestServer(stubBalances{balance: decimal.Zero})

	rr := s.do(t, http.MethodPost, "/api/auth/register", `{"email":"jane@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body sessionBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Len(t, body.Token, 64)
	assert.NotEmpty(t, body.User.ID)
	assert.Equal(t, "jane@example.com", body.User.Email)
	assert.True(t, body.User.Balance.IsZero())
}

func TestHandleRegister_Errors(t *testing.T) {
	s := newTestServer(stubBalances{})

	rr := s.do(t, http.MethodPost, "/api/auth/register", `{"email":"jane@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing password", `{"email":"a@example.com"}`, "Missing required fields"},
		{"invalid email", `{"email":"nope","password":"pw"}`, "Invalid email address"},
		{"existing email", `{"email":"jane@example.com","password":"pw"}`, "User already exists"},
		{"bad json", `{`, "Invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, http.MethodPost, "/api/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.message, errorMessage(t, rr))
		})
	}
}

func TestHandleLogin(t *testing.T) {
	s := newTestServer(stubBalances{balance: decimal.RequireFromString("700")})
	s.do(t, http.MethodPost, "/api/auth/register", `{"email":"jane@example.com","password":"pw"}`, "")

	rr := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"jane@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var body sessionBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "700", body.User.Balance.String())

	for i := 0; i < 2; i++ {
		rr = s.do(t, http.MethodPost, "/api/auth/login", `{"email":"jane@example.com","password":"bad"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid credentials", errorMessage(t, rr))
	}

	rr = s.do(t, http.MethodPost, "/api/auth/login", `{"email":"jane@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/auth/login", `{"email":"jane@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleMeAndLogout(t *testing.T) {
	s := newTestServer(stubBalances{balance: decimal.Zero})

	rr := s.do(t, http.MethodPost, "/api/auth/register", `{"email":"jane@example.com","password":"pw"}`, "")
	var registered sessionBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registered))

	rr = s.do(t, http.MethodGet, "/api/auth/me", "", registered.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	var me UserSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, registered.User.ID, me.ID)

	rr = s.do(t, http.MethodPost, "/api/auth/logout", "", registered.Token)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/auth/me", "", registered.Token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Unauthorized", errorMessage(t, rr))

	rr = s.do(t, http.MethodPost, "/api/auth/logout", "", registered.Token)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSessionMiddleware_RejectsMissingAndMalformedHeaders(t *testing.T) {
	s := newTestServer(stubBalances{})

	rr := s.do(t, http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	rr = httptest.NewRecorder()
	s.mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandleMe_BalanceFailureIs500(t *testing.T) {
	s := newTestServer(stubBalances{err: errors.New("db down")})

	rr := s.do(t, http.MethodPost, "/api/auth/register", `{"email":"jane@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error", errorMessage(t, rr))
}

func TestHandleMe_UnknownUserInContext(t *testing.T) {
	s := newTestServer(stubBalances{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(ContextWithUserID(req.Context(), "ghost"))
	rr := httptest.NewRecorder()
	s.handler.HandleMe(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
