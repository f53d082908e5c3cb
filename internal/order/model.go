package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment modes the API accepts.
const (
	PaymentCOD    = "cod"
	PaymentOnline = "online"
)

// Item is one line of a placed order as the my-orders endpoint returns it.
type Item struct {
	Dish     string          `json:"dish"`
	Name     string          `json:"name"`
	Dietary  string          `json:"dietory,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Order is one past order. Totals are computed server-side.
type Order struct {
	ID          string          `json:"_id"`
	Items       []Item          `json:"items"`
	PaymentMode string          `json:"paymentMode"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}
