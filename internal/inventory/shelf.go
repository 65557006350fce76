package inventory

import "github.com/cloud-wave-best-zizon/checkout-service/internal/domain"

// Shelf is a display grouping of products sharing a main category. It exists
// for catalog browsing only and plays no part in stock accounting.
type Shelf struct {
	Category domain.Category   `json:"category"`
	Products []*domain.Product `json:"products"`
}

// Shelves groups the catalog by main category, in first-seen order.
func (inv *Inventory) Shelves() []Shelf {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	index := make(map[string]int)
	var shelves []Shelf
	for _, p := range inv.products {
		i, ok := index[p.Category.Main]
		if !ok {
			i = len(shelves)
			index[p.Category.Main] = i
			shelves = append(shelves, Shelf{Category: p.Category})
		}
		shelves[i].Products = append(shelves[i].Products, p)
	}
	return shelves
}
