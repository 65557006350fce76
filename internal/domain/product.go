package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a product into a main group and a sub group.
// Shelves group products by the main category name.
type Category struct {
	Main string `json:"main"`
	Sub  string `json:"sub"`
}

type Product struct {
	ProductID      int             `json:"product_id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Category       Category        `json:"category"`
	Brand          string          `json:"brand,omitempty"`
	Variant        string          `json:"variant,omitempty"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Perishable reports whether the product carries an expiration date.
func (p *Product) Perishable() bool {
	return p.ExpirationDate != nil
}

// Clone returns an independent copy of the product.
func (p *Product) Clone() Product {
	cp := *p
	if p.ExpirationDate != nil {
		exp := *p.ExpirationDate
		cp.ExpirationDate = &exp
	}
	return cp
}
