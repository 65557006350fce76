package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/checkout-service/internal/domain"
)

func (h *StoreHandler) StartSession(c *gin.Context) {
	var req domain.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session, err := h.store.StartSession(req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := domain.SessionResponse{
		SessionID: session.ID,
		Name:      session.User.Name,
		Role:      session.User.Role,
	}
	if session.Card != nil {
		resp.CardNumber = session.Card.CardNumber()
		resp.CardPoints = session.Card.Points()
	}

	c.JSON(http.StatusCreated, resp)
}

func cartProductID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return 0, false
	}
	return id, true
}

func (h *StoreHandler) GetCart(c *gin.Context) {
	summary, err := h.store.CartSummary(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *StoreHandler) AddCartItem(c *gin.Context) {
	var req domain.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.store.AddToCart(c.Param("id"), req.ProductID, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}

	summary, err := h.store.CartSummary(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *StoreHandler) UpdateCartItem(c *gin.Context) {
	id, ok := cartProductID(c)
	if !ok {
		return
	}

	var req domain.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.store.UpdateCartItem(c.Param("id"), id, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}

	summary, err := h.store.CartSummary(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *StoreHandler) RemoveCartItem(c *gin.Context) {
	id, ok := cartProductID(c)
	if !ok {
		return
	}

	if err := h.store.RemoveFromCart(c.Param("id"), id); err != nil {
		h.respondError(c, err)
		return
	}

	summary, err := h.store.CartSummary(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *StoreHandler) QuoteCheckout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	quote, err := h.store.QuoteCheckout(c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.QuoteResponse{
		Subtotal:      quote.Subtotal,
		DiscountTotal: quote.DiscountTotal,
		VAT:           quote.VAT,
		Total:         quote.Total,
	})
}

func (h *StoreHandler) Checkout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tx, err := h.store.Checkout(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, domain.CheckoutResponse{
		TransactionID:  tx.ID,
		Subtotal:       tx.Subtotal,
		DiscountTotal:  tx.DiscountTotal,
		VAT:            tx.VAT,
		TotalCost:      tx.TotalCost,
		AmountReceived: tx.Payment.AmountReceived,
		Change:         tx.Payment.Change(),
		MemberPoints:   tx.MemberPoints,
		Timestamp:      tx.Timestamp,
	})
}

func (h *StoreHandler) ListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"transactions": h.store.ListTransactions()})
}

func (h *StoreHandler) GetTransaction(c *gin.Context) {
	tx, err := h.store.GetTransaction(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *StoreHandler) GetReceipt(c *gin.Context) {
	text, err := h.store.Receipt(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.String(http.StatusOK, text)
}
