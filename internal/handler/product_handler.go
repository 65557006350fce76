package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/checkout-service/internal/domain"
)

// defaultExpiryAlertDays is the window callers use for expiration alerts.
const defaultExpiryAlertDays = 15

func productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return 0, false
	}
	return id, true
}

func productResponses(products []*domain.Product) []domain.ProductResponse {
	out := make([]domain.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, domain.NewProductResponse(p))
	}
	return out
}

func (h *StoreHandler) CreateProduct(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.store.CreateProduct(c.Request.Context(), user, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, domain.NewProductResponse(product))
}

func (h *StoreHandler) GetProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.store.GetProduct(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.NewProductResponse(product))
}

func (h *StoreHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": productResponses(h.store.ListProducts())})
}

func (h *StoreHandler) DeleteProduct(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteProduct(c.Request.Context(), user, id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *StoreHandler) RestockProduct(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}
	id, ok := productID(c)
	if !ok {
		return
	}

	var req domain.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.store.Restock(c.Request.Context(), user, id, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.NewProductResponse(product))
}

func (h *StoreHandler) LowStock(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	products, err := h.store.LowStock(user)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": productResponses(products)})
}

func (h *StoreHandler) ExpiringProducts(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	days := defaultExpiryAlertDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days parameter"})
			return
		}
		days = parsed
	}

	products, err := h.store.ExpiringWithin(user, days)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days, "products": productResponses(products)})
}

func (h *StoreHandler) Shelves(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"shelves": h.store.Shelves()})
}
