package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	ProductID      int             `json:"product_id" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	Stock          int             `json:"stock" binding:"min=0"`
	CategoryMain   string          `json:"category_main" binding:"required"`
	CategorySub    string          `json:"category_sub"`
	Brand          string          `json:"brand"`
	Variant        string          `json:"variant"`
	ExpirationDate *time.Time      `json:"expiration_date"`
}

type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type StartSessionRequest struct {
	Name       string `json:"name" binding:"required"`
	Role       Role   `json:"role" binding:"required"`
	CardNumber string `json:"card_number"`
	CardPoints int    `json:"card_points"`
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	AmountReceived  decimal.Decimal `json:"amount_received" binding:"required"`
	SeniorDiscount  bool            `json:"senior_discount"`
	UseMemberPoints bool            `json:"use_member_points"`
}

type ProductResponse struct {
	ProductID      int             `json:"product_id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Category       Category        `json:"category"`
	Brand          string          `json:"brand,omitempty"`
	Variant        string          `json:"variant,omitempty"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
}

func NewProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ProductID:      p.ProductID,
		Name:           p.Name,
		Price:          p.Price,
		Stock:          p.Stock,
		Category:       p.Category,
		Brand:          p.Brand,
		Variant:        p.Variant,
		ExpirationDate: p.ExpirationDate,
	}
}

type CartLineResponse struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	Items    []CartLineResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

type SessionResponse struct {
	SessionID  string `json:"session_id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	CardNumber string `json:"card_number,omitempty"`
	CardPoints int    `json:"card_points,omitempty"`
}

type QuoteResponse struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	VAT           decimal.Decimal `json:"vat"`
	Total         decimal.Decimal `json:"total"`
}

type CheckoutResponse struct {
	TransactionID  string          `json:"transaction_id"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountTotal  decimal.Decimal `json:"discount_total"`
	VAT            decimal.Decimal `json:"vat"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	Change         decimal.Decimal `json:"change"`
	MemberPoints   int             `json:"member_points,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}
