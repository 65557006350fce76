package domain

import "github.com/shopspring/decimal"

// CartLine is one (product, quantity) entry in a cart. The product is a
// reference into the shared catalog, so the line total always reflects the
// product's current price.
type CartLine struct {
	Product  *Product
	Quantity int
}

// LineTotal is unit price times quantity at the current catalog price.
func (l *CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered collection of lines, at most one per product ID.
// It never touches inventory; stock is only checked at checkout.
type Cart struct {
	lines []*CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// Add appends a line for the product, merging quantities when a line for the
// same product ID already exists. Nil products and non-positive quantities
// are ignored.
func (c *Cart) Add(p *Product, quantity int) {
	if p == nil || quantity <= 0 {
		return
	}
	for _, line := range c.lines {
		if line.Product.ProductID == p.ProductID {
			line.Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, &CartLine{Product: p, Quantity: quantity})
}

// Remove deletes the line for the given product ID, if present.
func (c *Cart) Remove(productID int) {
	for i, line := range c.lines {
		if line.Product.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of an existing line. The quantity must be
// positive; callers wanting to drop a line use Remove instead.
func (c *Cart) SetQuantity(productID, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for _, line := range c.lines {
		if line.Product.ProductID == productID {
			line.Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

// Subtotal sums the line totals at current catalog prices. It is computed
// live on every call, never cached.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	return subtotal
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the line slice. The lines themselves are shared.
func (c *Cart) Lines() []*CartLine {
	out := make([]*CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Snapshot deep-copies the cart into purchased-item records with the price
// frozen at call time. Later cart or catalog mutation does not affect the
// snapshot.
func (c *Cart) Snapshot() []PurchasedItem {
	items := make([]PurchasedItem, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, PurchasedItem{
			ProductID: line.Product.ProductID,
			Name:      line.Product.Name,
			UnitPrice: line.Product.Price,
			Quantity:  line.Quantity,
		})
	}
	return items
}
