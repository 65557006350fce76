package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/checkout-service/internal/checkout"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/domain"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/inventory"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/service"
)

const sessionHeader = "X-Session-ID"

type StoreHandler struct {
	store  *service.StoreService
	logger *zap.Logger
}

func NewStoreHandler(store *service.StoreService, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes mounts all API routes on the given group.
func (h *StoreHandler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1.POST("/products", h.CreateProduct)
	v1.GET("/products", h.ListProducts)
	v1.GET("/products/:id", h.GetProduct)
	v1.DELETE("/products/:id", h.DeleteProduct)
	v1.POST("/products/:id/restock", h.RestockProduct)

	v1.GET("/inventory/low-stock", h.LowStock)
	v1.GET("/inventory/expiring", h.ExpiringProducts)
	v1.GET("/inventory/shelves", h.Shelves)

	v1.POST("/sessions", h.StartSession)
	v1.GET("/sessions/:id/cart", h.GetCart)
	v1.POST("/sessions/:id/cart/items", h.AddCartItem)
	v1.PUT("/sessions/:id/cart/items/:productId", h.UpdateCartItem)
	v1.DELETE("/sessions/:id/cart/items/:productId", h.RemoveCartItem)
	v1.POST("/sessions/:id/checkout/quote", h.QuoteCheckout)
	v1.POST("/sessions/:id/checkout", h.Checkout)

	v1.GET("/transactions", h.ListTransactions)
	v1.GET("/transactions/:id", h.GetTransaction)
	v1.GET("/transactions/:id/receipt", h.GetReceipt)
}

// sessionUser resolves the acting user for management endpoints from the
// X-Session-ID header. Credential validation happens upstream; the session
// layer only hands over an identity and role.
func (h *StoreHandler) sessionUser(c *gin.Context) (domain.User, bool) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing " + sessionHeader + " header"})
		return domain.User{}, false
	}
	session, err := h.store.GetSession(sessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown session"})
		return domain.User{}, false
	}
	return session.User, true
}

// respondError maps domain errors onto HTTP statuses. Every core failure is
// a rejected operation, never a crash.
func (h *StoreHandler) respondError(c *gin.Context, err error) {
	var stockErr *inventory.StockUnavailableError
	var paymentErr *checkout.InsufficientPaymentError

	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Insufficient stock",
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
		})
	case errors.As(err, &paymentErr):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":     "Insufficient payment",
			"shortfall": paymentErr.Shortfall,
		})
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidRedemption),
		errors.Is(err, service.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmployeeRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrProductNotFound),
		errors.Is(err, domain.ErrLineNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrProductExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
