package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id int, price string, stock int) *Product {
	return &Product{
		ProductID: id,
		Name:      "Test Product",
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		Category:  Category{Main: "Food"},
	}
}

func TestCartAddMergesSameProduct(t *testing.T) {
	cart := NewCart()
	p := testProduct(1, "20.00", 10)

	cart.Add(p, 2)
	cart.Add(p, 3)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCartAddIgnoresInvalidInput(t *testing.T) {
	cart := NewCart()
	p := testProduct(1, "20.00", 10)

	cart.Add(nil, 2)
	cart.Add(p, 0)
	cart.Add(p, -1)

	assert.True(t, cart.IsEmpty())
}

func TestCartRemove(t *testing.T) {
	cart := NewCart()
	a := testProduct(1, "20.00", 10)
	b := testProduct(2, "5.00", 10)
	cart.Add(a, 1)
	cart.Add(b, 1)

	cart.Remove(1)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Product.ProductID)

	// Removing an absent product is a no-op.
	cart.Remove(99)
	assert.Len(t, cart.Lines(), 1)
}

func TestCartSetQuantity(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, "20.00", 10), 2)

	require.NoError(t, cart.SetQuantity(1, 7))
	assert.Equal(t, 7, cart.Lines()[0].Quantity)

	assert.ErrorIs(t, cart.SetQuantity(1, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.SetQuantity(1, -3), ErrInvalidQuantity)
	assert.Equal(t, 7, cart.Lines()[0].Quantity)

	assert.ErrorIs(t, cart.SetQuantity(99, 1), ErrLineNotFound)
}

func TestCartSubtotalIsLive(t *testing.T) {
	cart := NewCart()
	p := testProduct(1, "20.00", 10)
	cart.Add(p, 5)

	assert.Equal(t, "100.00", cart.Subtotal().StringFixed(2))

	// A price change in the shared catalog shows up immediately.
	p.Price = decimal.RequireFromString("25.00")
	assert.Equal(t, "125.00", cart.Subtotal().StringFixed(2))
}

func TestCartSnapshotFreezesPrices(t *testing.T) {
	cart := NewCart()
	p := testProduct(1, "20.00", 10)
	cart.Add(p, 5)

	snapshot := cart.Snapshot()
	require.Len(t, snapshot, 1)

	p.Price = decimal.RequireFromString("99.00")
	cart.Clear()

	assert.Equal(t, "20.00", snapshot[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "100.00", snapshot[0].LineTotal().StringFixed(2))
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, "20.00", 10), 1)
	require.False(t, cart.IsEmpty())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Subtotal().IsZero())
}
