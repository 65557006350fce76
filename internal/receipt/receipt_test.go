package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloud-wave-best-zizon/checkout-service/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleTransaction() *domain.Transaction {
	ts := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	return &domain.Transaction{
		ID:           "TXN-test-1234",
		CustomerName: "Alice",
		Items: []domain.PurchasedItem{
			{ProductID: 1, Name: "Instant Noodles", UnitPrice: dec("20.00"), Quantity: 5},
		},
		Subtotal:      dec("100.00"),
		DiscountTotal: dec("0"),
		VAT:           dec("12.00"),
		TotalCost:     dec("112.00"),
		Payment:       domain.NewPayment(dec("200.00"), dec("112.00")),
		Timestamp:     ts,
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	tx := sampleTransaction()
	assert.Equal(t, Render(tx), Render(tx))
}

func TestRenderLayout(t *testing.T) {
	text := Render(sampleTransaction())

	assert.Contains(t, text, "CONVENIENCE STORE")
	assert.Contains(t, text, "Date: 2025-06-01 14:30:00")
	assert.Contains(t, text, "Transaction ID: TXN-test-1234")
	assert.Contains(t, text, "Customer: Alice")
	assert.Contains(t, text, "Instant Noodles     x5    P  100.00")
	assert.Contains(t, text, "Subtotal:               P  100.00")
	assert.Contains(t, text, "VAT (12%):              P   12.00")
	assert.Contains(t, text, "TOTAL:                  P  112.00")
	assert.Contains(t, text, "Amount Received:        P  200.00")
	assert.Contains(t, text, "Change:                 P   88.00")
	assert.Contains(t, text, "Thank you for shopping with us!")
}

func TestRenderOmitsZeroDiscount(t *testing.T) {
	text := Render(sampleTransaction())
	assert.NotContains(t, text, "Discount:")
	assert.NotContains(t, text, "After Discount:")
}

func TestRenderShowsDiscountWhenPresent(t *testing.T) {
	tx := sampleTransaction()
	tx.DiscountTotal = dec("30.00")
	tx.VAT = dec("8.40")
	tx.TotalCost = dec("78.40")
	tx.Payment = domain.NewPayment(dec("100.00"), dec("78.40"))

	text := Render(tx)
	assert.Contains(t, text, "Discount:              -P   30.00")
	assert.Contains(t, text, "After Discount:         P   70.00")
}

func TestRenderMemberLines(t *testing.T) {
	tx := sampleTransaction()
	text := Render(tx)
	assert.NotContains(t, text, "Member Card:")

	tx.MemberCardNumber = "M-001"
	tx.MemberPoints = 12
	text = Render(tx)
	assert.Contains(t, text, "Member Card: M-001")
	assert.Contains(t, text, "Points Balance: 12")
}

func TestRenderNeverMutates(t *testing.T) {
	tx := sampleTransaction()
	before := tx.TotalCost.StringFixed(2)
	items := len(tx.Items)

	for i := 0; i < 3; i++ {
		Render(tx)
	}

	require.Equal(t, before, tx.TotalCost.StringFixed(2))
	require.Equal(t, items, len(tx.Items))
}

func TestRenderLineOrder(t *testing.T) {
	text := Render(sampleTransaction())

	subtotalAt := strings.Index(text, "Subtotal:")
	vatAt := strings.Index(text, "VAT (12%):")
	totalAt := strings.Index(text, "TOTAL:")
	require.True(t, subtotalAt >= 0 && vatAt >= 0 && totalAt >= 0)
	assert.Less(t, subtotalAt, vatAt)
	assert.Less(t, vatAt, totalAt)
}
