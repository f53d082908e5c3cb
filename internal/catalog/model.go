package catalog

import "github.com/shopspring/decimal"

// Category and dietary values exactly as the restaurant API spells them.
const (
	CategoryStarters   = "starters"
	CategoryMainCourse = "main-course"
	CategoryDessert    = "dessert"
	CategoryBeverages  = "beverages"

	DietaryVeg    = "veg"
	DietaryNonVeg = "non-veg"
	DietaryEgg    = "egge" // sic, the wire value
)

// Dish is one sellable item from a catalog snapshot. Image may be empty;
// that renders as a placeholder, not an error.
type Dish struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Portion     string          `json:"portion,omitempty"`
	Category    string          `json:"category,omitempty"`
	Dietary     string          `json:"dietory,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
}

// FilterByCategory keeps dishes of one category. Empty category keeps all.
func FilterByCategory(dishes []Dish, category string) []Dish {
	if category == "" {
		return dishes
	}
	var out []Dish
	for _, d := range dishes {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// FilterByDietary keeps dishes matching any of the given dietary flags. An
// empty filter keeps everything.
func FilterByDietary(dishes []Dish, diets []string) []Dish {
	if len(diets) == 0 {
		return dishes
	}
	want := make(map[string]bool, len(diets))
	for _, d := range diets {
		want[d] = true
	}
	var out []Dish
	for _, d := range dishes {
		if want[d.Dietary] {
			out = append(out, d)
		}
	}
	return out
}
