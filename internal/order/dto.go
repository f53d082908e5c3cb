package order

import "github.com/go-playground/validator/v10"

// PlaceItem is one line of a checkout request.
type PlaceItem struct {
	Dish     string `json:"dish" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// PlaceRequest is the body of POST /api/orders.
type PlaceRequest struct {
	Items       []PlaceItem `json:"items" validate:"required,min=1,dive"`
	PaymentMode string      `json:"paymentMode" validate:"required,oneof=cod online"`
}

var validate = validator.New()

// Validate checks the request before any network call is made.
func (r PlaceRequest) Validate() error {
	return validate.Struct(r)
}
