// Package analytics aggregates order history for the profile report.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/deepanshu0430/khana-client/internal/catalog"
	"github.com/deepanshu0430/khana-client/internal/order"
)

// Slice is one wedge of a profile chart: a label and a quantity-weighted
// count. Rendering (colors, percentages) is the caller's business.
type Slice struct {
	Name  string
	Value int
}

// dietaryOf falls back to guessing from the dish name when the order item
// carries no dietary flag, the way the profile screen always has: "veg"
// wins over "egg", anything else counts as non-veg.
func dietaryOf(it order.Item) string {
	if it.Dietary != "" {
		return it.Dietary
	}
	name := strings.ToLower(it.Name)
	switch {
	case strings.Contains(name, "veg"):
		return catalog.DietaryVeg
	case strings.Contains(name, "egg"):
		return catalog.DietaryEgg
	default:
		return catalog.DietaryNonVeg
	}
}

// DietaryBreakdown counts ordered quantities per dietary class. Zero-count
// wedges are omitted; the order is always veg, non-veg, egg.
func DietaryBreakdown(orders []order.Order) []Slice {
	counts := map[string]int{}
	for _, o := range orders {
		for _, it := range o.Items {
			counts[dietaryOf(it)] += it.Quantity
		}
	}
	labels := []struct{ key, name string }{
		{catalog.DietaryVeg, "Veg"},
		{catalog.DietaryNonVeg, "Non-Veg"},
		{catalog.DietaryEgg, "Eggetarian"},
	}
	var out []Slice
	for _, l := range labels {
		if counts[l.key] > 0 {
			out = append(out, Slice{Name: l.name, Value: counts[l.key]})
		}
	}
	return out
}

// TopDishes returns the n most ordered dishes by quantity. Ties break on
// name so the result is deterministic.
func TopDishes(orders []order.Order, n int) []Slice {
	counts := map[string]int{}
	for _, o := range orders {
		for _, it := range o.Items {
			counts[it.Name] += it.Quantity
		}
	}
	out := make([]Slice, 0, len(counts))
	for name, v := range counts {
		out = append(out, Slice{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// FilterByDate keeps orders placed on the given calendar day, evaluated in
// day's location.
func FilterByDate(orders []order.Order, day time.Time) []order.Order {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	// next midnight, not start+24h: DST days are 23 or 25 hours long
	end := time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, day.Location())
	var out []order.Order
	for _, o := range orders {
		t := o.CreatedAt.In(day.Location())
		if !t.Before(start) && t.Before(end) {
			out = append(out, o)
		}
	}
	return out
}
