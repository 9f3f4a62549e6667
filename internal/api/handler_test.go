package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shariqwaseem/sw-clone/internal/auth"
	"github.com/shariqwaseem/sw-clone/internal/service"
	"github.com/shariqwaseem/sw-clone/internal/storage/sqlite"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	handler := NewHandler(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager),
		service.NewGroupService(store),
		service.NewLedgerService(store),
		jwtManager,
	)

	router := gin.New()
	handler.SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) (uid, token string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "displayName": "User", "password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User  struct{ ID string }
		Token string
	}
	decode(t, w, &resp)
	return resp.User.ID, resp.Token
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "not-an-email", "displayName": "X", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, token := registerAndLogin(t, router, "alice@example.com")
	assert.NotEmpty(t, token)

	w = doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "alice@example.com", "displayName": "Dup", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Protected routes reject missing and garbage tokens.
	w = doJSON(t, router, http.MethodGet, "/api/groups", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/groups", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGroupExpenseFlow(t *testing.T) {
	router := newTestRouter(t)

	aliceUID, aliceToken := registerAndLogin(t, router, "alice@example.com")
	bobUID, bobToken := registerAndLogin(t, router, "bob@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/groups", aliceToken, gin.H{
		"name": "Trip", "currency": "USD",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Group struct{ ID string }
	}
	decode(t, w, &created)
	groupID := created.Group.ID

	// Bob is not a member yet.
	w = doJSON(t, router, http.MethodGet, "/api/groups/"+groupID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/groups/"+groupID+"/join", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	expenseBody := gin.H{
		"description": "Dinner",
		"totalAmount": 90.0,
		"date":        "2025-01-15",
		"payers":      []gin.H{{"uid": aliceUID, "amount": 90.0}},
		"splits": []gin.H{
			{"uid": aliceUID, "amount": 45.0},
			{"uid": bobUID, "amount": 45.0},
		},
	}
	w = doJSON(t, router, http.MethodPost, "/api/groups/"+groupID+"/expenses", aliceToken, expenseBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var createdExpense struct {
		Expense struct {
			ID       string
			Currency string
		}
	}
	decode(t, w, &createdExpense)
	assert.Equal(t, "USD", createdExpense.Expense.Currency)

	// A mismatched split sum is rejected.
	bad := gin.H{
		"description": "Broken",
		"totalAmount": 90.0,
		"date":        "2025-01-15",
		"payers":      []gin.H{{"uid": aliceUID, "amount": 90.0}},
		"splits":      []gin.H{{"uid": bobUID, "amount": 45.0}},
	}
	w = doJSON(t, router, http.MethodPost, "/api/groups/"+groupID+"/expenses", aliceToken, bad)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/groups/"+groupID+"/balances", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var balancesResp struct {
		Balances map[string]float64
	}
	decode(t, w, &balancesResp)
	assert.InDelta(t, 45, balancesResp.Balances[aliceUID], 1e-9)
	assert.InDelta(t, -45, balancesResp.Balances[bobUID], 1e-9)

	w = doJSON(t, router, http.MethodGet, "/api/groups/"+groupID+"/settlements", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var settlementsResp struct {
		Settlements []struct {
			FromUID string  `json:"fromUid"`
			ToUID   string  `json:"toUid"`
			Amount  float64 `json:"amount"`
		}
	}
	decode(t, w, &settlementsResp)
	require.Len(t, settlementsResp.Settlements, 1)
	assert.Equal(t, bobUID, settlementsResp.Settlements[0].FromUID)
	assert.Equal(t, aliceUID, settlementsResp.Settlements[0].ToUID)
	assert.InDelta(t, 45, settlementsResp.Settlements[0].Amount, 1e-9)

	// Soft delete hides the expense and zeroes the balances.
	w = doJSON(t, router, http.MethodDelete, "/api/expenses/"+createdExpense.Expense.ID, aliceToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/groups/"+groupID+"/settlements", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &settlementsResp)
	assert.Empty(t, settlementsResp.Settlements)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/groups/%s/expenses?includeDeleted=true", groupID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Expenses []struct {
			IsDeleted bool `json:"isDeleted"`
		}
	}
	decode(t, w, &listResp)
	require.Len(t, listResp.Expenses, 1)
	assert.True(t, listResp.Expenses[0].IsDeleted)
}
