package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/checkout-service/internal/checkout"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/domain"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/inventory"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	inv := inventory.New()
	inv.Load([]domain.Product{
		{ProductID: 1, Name: "Noodles", Price: decimal.RequireFromString("20.00"), Stock: 10, Category: domain.Category{Main: "Food"}},
		{ProductID: 2, Name: "Soda", Price: decimal.RequireFromString("25.00"), Stock: 3, Category: domain.Category{Main: "Beverage"}},
	})

	svc := service.New(inv, checkout.NewEngine(inv, logger), nil, nil, logger)
	h := NewStoreHandler(svc, logger)

	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func startSession(t *testing.T, router *gin.Engine, name string, role domain.Role, cardNumber string, points int) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions", domain.StartSessionRequest{
		Name:       name,
		Role:       role,
		CardNumber: cardNumber,
		CardPoints: points,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeMap(t, w)["session_id"].(string)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/v1/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	router := newTestRouter(t)
	sessionID := startSession(t, router, "Alice", domain.RoleCustomer, "", 0)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+sessionID+"/cart/items",
		domain.AddCartItemRequest{ProductID: 1, Quantity: 5}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decodeMap(t, w)
	assert.Equal(t, "100", cart["subtotal"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+sessionID+"/checkout/quote",
		domain.CheckoutRequest{AmountReceived: decimal.RequireFromString("200.00")}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	quote := decodeMap(t, w)
	assert.Equal(t, "112", quote["total"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+sessionID+"/checkout",
		domain.CheckoutRequest{AmountReceived: decimal.RequireFromString("200.00")}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	result := decodeMap(t, w)
	assert.Equal(t, "88", result["change"])
	txID := result["transaction_id"].(string)

	w = doJSON(t, router, http.MethodGet, "/api/v1/transactions/"+txID+"/receipt", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Customer: Alice")

	// Cart is fresh after checkout.
	w = doJSON(t, router, http.MethodGet, "/api/v1/sessions/"+sessionID+"/cart", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeMap(t, w)["items"])
}

func TestCheckoutInsufficientPayment(t *testing.T) {
	router := newTestRouter(t)
	sessionID := startSession(t, router, "Alice", domain.RoleCustomer, "M-001", 30)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+sessionID+"/cart/items",
		domain.AddCartItemRequest{ProductID: 1, Quantity: 5}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+sessionID+"/checkout",
		domain.CheckoutRequest{AmountReceived: decimal.RequireFromString("50.00"), UseMemberPoints: true}, nil)
	require.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "28.4", decodeMap(t, w)["shortfall"])
}

func TestCheckoutStockUnavailable(t *testing.T) {
	router := newTestRouter(t)
	sessionID := startSession(t, router, "Alice", domain.RoleCustomer, "", 0)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+sessionID+"/cart/items",
		domain.AddCartItemRequest{ProductID: 2, Quantity: 5}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+sessionID+"/checkout",
		domain.CheckoutRequest{AmountReceived: decimal.RequireFromString("500.00")}, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	body := decodeMap(t, w)
	assert.Equal(t, float64(5), body["requested"])
	assert.Equal(t, float64(3), body["available"])
}

func TestManagementEndpointsRequireEmployee(t *testing.T) {
	router := newTestRouter(t)
	customerID := startSession(t, router, "Alice", domain.RoleCustomer, "", 0)
	employeeID := startSession(t, router, "Eve", domain.RoleEmployee, "", 0)

	restock := domain.RestockRequest{Quantity: 5}

	w := doJSON(t, router, http.MethodPost, "/api/v1/products/1/restock", restock, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/products/1/restock", restock,
		map[string]string{"X-Session-ID": customerID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/products/1/restock", restock,
		map[string]string{"X-Session-ID": employeeID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(15), decodeMap(t, w)["stock"])
}

func TestLowStockAlert(t *testing.T) {
	router := newTestRouter(t)
	employeeID := startSession(t, router, "Eve", domain.RoleEmployee, "", 0)

	w := doJSON(t, router, http.MethodGet, "/api/v1/inventory/low-stock", nil,
		map[string]string{"X-Session-ID": employeeID})
	require.Equal(t, http.StatusOK, w.Code)

	products := decodeMap(t, w)["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, float64(2), products[0].(map[string]any)["product_id"])
}

func TestGetUnknownProduct(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
