package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/deepanshu0430/khana-client/internal/httpx"
	"github.com/deepanshu0430/khana-client/internal/session"
	"github.com/deepanshu0430/khana-client/internal/storage"
)

var (
	ErrEmptyCart = errors.New("order: cart is empty")

	// ErrStale marks order history served from the local cache because the
	// network fetch failed. Callers test it with errors.Is.
	ErrStale = errors.New("order: showing cached orders")
)

// Client talks to the order endpoints of the restaurant API. Fetched order
// history is cached under the "orders" key so the profile report can fall
// back to stale data when the network is down.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Cache   storage.Store
}

func NewClient(baseURL string, timeout time.Duration, cache storage.Store) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: timeout, Transport: httpx.NewTransport(nil)},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Cache:   cache,
	}
}

// Place submits an order and returns the server's message. The request is
// validated locally first; nothing goes on the wire for a bad payload or a
// missing token.
func (c *Client) Place(ctx context.Context, token string, req PlaceRequest) (string, error) {
	if token == "" {
		return "", session.ErrNotAuthenticated
	}
	if err := req.Validate(); err != nil {
		return "", err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Authorization", "Bearer "+token)
	res, err := c.HTTP.Do(hreq)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", httpx.APIError(res, "failed to place order")
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("order: decode response: %w", err)
	}
	if out.Message == "" {
		out.Message = "Order placed successfully"
	}
	return out.Message, nil
}

// MyOrders fetches the caller's order history. On success the raw list is
// cached; on a connectivity failure the cached copy is returned together
// with an ErrStale-wrapped error so callers can tell fresh from stale.
// Non-2xx responses do not fall back: the server spoke, the answer is no.
func (c *Client) MyOrders(ctx context.Context, token string) ([]Order, error) {
	if token == "" {
		return nil, session.ErrNotAuthenticated
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/orders/my-orders", nil)
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Authorization", "Bearer "+token)
	res, err := c.HTTP.Do(hreq)
	if err != nil {
		return c.cached(ctx, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, httpx.APIError(res, "failed to fetch orders")
	}
	var body struct {
		Orders []Order `json:"orders"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("order: decode response: %w", err)
	}
	if c.Cache != nil {
		if raw, err := json.Marshal(body.Orders); err == nil {
			_ = c.Cache.Set(ctx, storage.KeyOrders, string(raw))
		}
	}
	return body.Orders, nil
}

func (c *Client) cached(ctx context.Context, cause error) ([]Order, error) {
	if c.Cache == nil {
		return nil, cause
	}
	raw, err := c.Cache.Get(ctx, storage.KeyOrders)
	if err != nil {
		return nil, cause
	}
	var orders []Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return nil, cause
	}
	return orders, fmt.Errorf("%w: %v", ErrStale, cause)
}
