package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sebuszqo/MyFinance/internal/finance/domain"
	"github.com/sebuszqo/MyFinance/internal/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture() (*MockUserLookup, *MockLedgerReader) {
	users := &MockUserLookup{users: map[string]*user.User{
		"u-1": {ID: "u-1", Email: "jane@example.com", PasswordHash: "secret-hash"},
	}}
	ledger := &MockLedgerReader{
		balance: decimal.RequireFromString("700"),
		operations: []domain.Operation{
			{ID: "op-2", Type: domain.Expense, Amount: decimal.RequireFromString("300"), Category: "food", Date: "2025-01-02"},
			{ID: "op-1", Type: domain.Income, Amount: decimal.RequireFromString("1000"), Category: "salary", Date: "2025-01-01"},
		},
		budgets: []domain.Budget{
			{ID: "b-1", Category: "food", Limit: decimal.RequireFromString("500"), Period: "2025-01", Spent: decimal.RequireFromString("300")},
		},
	}
	return users, ledger
}

func TestGetProfile(t *testing.T) {
	users, ledger := newProfileFixture()
	handler := NewProfileHandler(users, ledger, ledger, respondJSON, respondError, discardLogger)

	w := httptest.NewRecorder()
	handler.GetProfile(w, authedRequest(http.MethodGet, "/user", "", "u-1"))

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var profile map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&profile))
	assert.Equal(t, "u-1", profile["id"])
	assert.Equal(t, float64(700), profile["balance"])
	assert.Len(t, profile["operations"], 2)
	assert.Len(t, profile["budgets"], 1)
	assert.NotContains(t, profile, "passwordHash")
	assert.NotContains(t, profile, "PasswordHash")
}

func TestGetProfile_UnknownUser(t *testing.T) {
	users, ledger := newProfileFixture()
	handler := NewProfileHandler(users, ledger, ledger, respondJSON, respondError, discardLogger)

	w := httptest.NewRecorder()
	handler.GetProfile(w, authedRequest(http.MethodGet, "/user", "", "ghost"))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "User not found", decodeError(t, res))
}

func TestGetProfile_ReaderFailure(t *testing.T) {
	users, ledger := newProfileFixture()
	ledger.failBudget = true
	handler := NewProfileHandler(users, ledger, ledger, respondJSON, respondError, discardLogger)

	w := httptest.NewRecorder()
	handler.GetProfile(w, authedRequest(http.MethodGet, "/user", "", "u-1"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPathUserMiddleware(t *testing.T) {
	users, ledger := newProfileFixture()
	const legacyID = "0b6c8f7e-4a55-4c39-9a57-3c1f0e2d9a10"
	users.users[legacyID] = &user.User{ID: legacyID, Email: "legacy@example.com"}
	handler := NewProfileHandler(users, ledger, ledger, respondJSON, respondError, discardLogger)

	mux := http.NewServeMux()
	mux.Handle("GET /api/user/{userID}", PathUserMiddleware(users, respondError)(http.HandlerFunc(handler.GetProfile)))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user/"+legacyID, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user/ghost", nil))
	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "User not found", decodeError(t, res))

	failing := &MockUserLookup{err: errors.New("db down")}
	mux = http.NewServeMux()
	mux.Handle("GET /api/user/{userID}", PathUserMiddleware(failing, respondError)(http.HandlerFunc(handler.GetProfile)))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user/"+legacyID, nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
