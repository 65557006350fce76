// Package pricing holds the store's discount and tax rules as pure
// functions. The ordering contract is fixed: senior discount first, then
// membership discount, then VAT on whatever remains.
package pricing

import "github.com/shopspring/decimal"

var (
	// SeniorRate is the senior-citizen discount, 20%.
	SeniorRate = decimal.NewFromFloat(0.20)
	// VATRate is the value-added tax, 12%, applied after all discounts.
	VATRate = decimal.NewFromFloat(0.12)
)

// ApplySeniorDiscount returns the amount after the senior discount.
// Non-positive amounts pass through unchanged.
func ApplySeniorDiscount(amount decimal.Decimal) decimal.Decimal {
	if amount.Sign() <= 0 {
		return amount
	}
	return amount.Sub(amount.Mul(SeniorRate))
}

// ApplyMembershipDiscount returns the amount after deducting up to
// availableDiscount, never going below zero. It is a projection over a
// read-only discount value; redeeming the underlying points is the checkout
// engine's job.
func ApplyMembershipDiscount(availableDiscount, amount decimal.Decimal) decimal.Decimal {
	if availableDiscount.Sign() <= 0 || amount.Sign() <= 0 {
		return amount
	}
	return amount.Sub(decimal.Min(availableDiscount, amount))
}

// VAT computes the tax on an already-discounted amount.
func VAT(amount decimal.Decimal) decimal.Decimal {
	if amount.Sign() <= 0 {
		return decimal.Zero
	}
	return amount.Mul(VATRate)
}
