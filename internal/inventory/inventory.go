// Package inventory is the stock registry: it owns the product catalog,
// validates stock mutations, and commits purchases all-or-nothing.
package inventory

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cloud-wave-best-zizon/checkout-service/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
)

// StockUnavailableError reports a requested quantity exceeding current stock.
type StockUnavailableError struct {
	ProductID int
	Name      string
	Requested int
	Available int
}

func (e *StockUnavailableError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (product %d): requested %d, available %d",
		e.Name, e.ProductID, e.Requested, e.Available)
}

// lowStockThreshold flags products for restock alerts. Fixed, not
// configurable.
const lowStockThreshold = 5

// Inventory is a single owned instance injected wherever stock is read or
// committed; there is no ambient global. The mutex makes it safe behind a
// concurrent HTTP surface.
type Inventory struct {
	mu       sync.RWMutex
	products []*domain.Product
	byID     map[int]*domain.Product
}

func New() *Inventory {
	return &Inventory{byID: make(map[int]*domain.Product)}
}

// Load replaces the catalog with the given products, copying each record.
func (inv *Inventory) Load(products []domain.Product) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.products = inv.products[:0]
	inv.byID = make(map[int]*domain.Product, len(products))
	for i := range products {
		p := products[i].Clone()
		inv.products = append(inv.products, &p)
		inv.byID[p.ProductID] = &p
	}
}

// Export copies out the current product states for the persistence layer.
// Export after Load yields the same (id, stock) set.
func (inv *Inventory) Export() []domain.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	out := make([]domain.Product, 0, len(inv.products))
	for _, p := range inv.products {
		out = append(out, p.Clone())
	}
	return out
}

func (inv *Inventory) Add(product domain.Product) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, ok := inv.byID[product.ProductID]; ok {
		return ErrProductExists
	}
	p := product.Clone()
	inv.products = append(inv.products, &p)
	inv.byID[p.ProductID] = &p
	return nil
}

func (inv *Inventory) Remove(productID int) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, ok := inv.byID[productID]; !ok {
		return ErrProductNotFound
	}
	delete(inv.byID, productID)
	for i, p := range inv.products {
		if p.ProductID == productID {
			inv.products = append(inv.products[:i], inv.products[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the live catalog entry. Cart lines hold this pointer so line
// totals track price changes.
func (inv *Inventory) Get(productID int) (*domain.Product, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	p, ok := inv.byID[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Products returns the catalog in insertion order.
func (inv *Inventory) Products() []*domain.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	out := make([]*domain.Product, len(inv.products))
	copy(out, inv.products)
	return out
}

// Restock adds quantity to a product's stock. Non-positive quantities are
// rejected, not silently ignored.
func (inv *Inventory) Restock(productID, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	p, ok := inv.byID[productID]
	if !ok {
		return ErrProductNotFound
	}
	p.Stock += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// ReduceStock decrements a product's stock, failing without mutation when
// the quantity is non-positive or exceeds what is available.
func (inv *Inventory) ReduceStock(productID, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.reduceLocked(productID, quantity)
}

func (inv *Inventory) reduceLocked(productID, quantity int) error {
	p, ok := inv.byID[productID]
	if !ok {
		return ErrProductNotFound
	}
	if quantity > p.Stock {
		return &StockUnavailableError{
			ProductID: p.ProductID,
			Name:      p.Name,
			Requested: quantity,
			Available: p.Stock,
		}
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	return nil
}

// CommitPurchase deducts stock for every cart line, all-or-nothing: every
// line is validated against current stock before the first deduction, so a
// failing line leaves the whole inventory untouched and the recorded
// purchase always matches what was actually deducted.
func (inv *Inventory) CommitPurchase(cart *domain.Cart) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	lines := cart.Lines()
	for _, line := range lines {
		p, ok := inv.byID[line.Product.ProductID]
		if !ok {
			return ErrProductNotFound
		}
		if line.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		if line.Quantity > p.Stock {
			return &StockUnavailableError{
				ProductID: p.ProductID,
				Name:      p.Name,
				Requested: line.Quantity,
				Available: p.Stock,
			}
		}
	}
	for _, line := range lines {
		if err := inv.reduceLocked(line.Product.ProductID, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// LowStock returns products with stock below the restock threshold.
func (inv *Inventory) LowStock() []*domain.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	var low []*domain.Product
	for _, p := range inv.products {
		if p.Stock < lowStockThreshold {
			low = append(low, p)
		}
	}
	return low
}

// ExpiringWithin returns perishable products whose expiration date falls
// within the next days (inclusive), plus anything already expired.
func (inv *Inventory) ExpiringWithin(days int) []*domain.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	cutoff := time.Now().AddDate(0, 0, days)
	var expiring []*domain.Product
	for _, p := range inv.products {
		if p.ExpirationDate != nil && !p.ExpirationDate.After(cutoff) {
			expiring = append(expiring, p)
		}
	}
	return expiring
}
