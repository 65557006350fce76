package domain

import "github.com/shopspring/decimal"

// Payment records the money side of a transaction. It is constructed once,
// after the total has been validated against the amount received, and never
// changes afterwards.
type Payment struct {
	AmountReceived decimal.Decimal `json:"amount_received"`
	TotalDue       decimal.Decimal `json:"total_due"`
}

func NewPayment(amountReceived, totalDue decimal.Decimal) Payment {
	return Payment{AmountReceived: amountReceived, TotalDue: totalDue}
}

func (p Payment) Sufficient() bool {
	return p.AmountReceived.GreaterThanOrEqual(p.TotalDue)
}

// Change is the amount returned to the customer, zero when the payment does
// not cover the total.
func (p Payment) Change() decimal.Decimal {
	if !p.Sufficient() {
		return decimal.Zero
	}
	return p.AmountReceived.Sub(p.TotalDue)
}
