// Package cart owns the on-device cart: the persisted id/quantity pairs and
// the reconciliation that joins them with a catalog snapshot for display.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/deepanshu0430/khana-client/internal/catalog"
)

// PersistedLine is the durable unit of cart state: a dish reference and a
// positive quantity. The persisted cart is a JSON array of these under the
// "cart" key. Quantities below one never persist; a line at zero is removed.
type PersistedLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// Line is a persisted line joined with its catalog attributes, ready for
// display.
type Line struct {
	ID       string
	Quantity int
	Name     string
	Price    decimal.Decimal
	Image    string
}

// Reconcile joins persisted lines against a catalog snapshot. Lines whose id
// has no match in the snapshot are dropped from the result; persisted order
// (first-add order) is preserved. Pure and deterministic.
func Reconcile(lines []PersistedLine, dishes []catalog.Dish) []Line {
	byID := make(map[string]catalog.Dish, len(dishes))
	for _, d := range dishes {
		byID[d.ID] = d
	}
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		d, ok := byID[l.ID]
		if !ok {
			continue
		}
		out = append(out, Line{
			ID:       l.ID,
			Quantity: l.Quantity,
			Name:     d.Name,
			Price:    d.Price,
			Image:    d.Image,
		})
	}
	return out
}

// Total sums price times quantity over the enriched lines.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}
