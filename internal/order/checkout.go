package order

import (
	"context"

	"github.com/deepanshu0430/khana-client/internal/cart"
	"github.com/deepanshu0430/khana-client/internal/session"
)

// Checkout turns the current cart into an order. A confirmed success clears
// the cart; any failure leaves it untouched so the user can retry.
type Checkout struct {
	Cart     *cart.Store
	Orders   *Client
	Sessions *session.Manager
}

// Place submits the given enriched lines (the view the screen already holds)
// as an order and clears the cart once the server acknowledges it. The
// non-empty and token checks run before anything goes on the wire.
func (c *Checkout) Place(ctx context.Context, lines []cart.Line, paymentMode string) (string, error) {
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}
	token, err := c.Sessions.Token(ctx)
	if err != nil {
		return "", err
	}
	req := PlaceRequest{PaymentMode: paymentMode}
	for _, l := range lines {
		req.Items = append(req.Items, PlaceItem{Dish: l.ID, Quantity: l.Quantity})
	}
	msg, err := c.Orders.Place(ctx, token, req)
	if err != nil {
		return "", err
	}
	if err := c.Cart.Clear(ctx); err != nil {
		return msg, err
	}
	return msg, nil
}
