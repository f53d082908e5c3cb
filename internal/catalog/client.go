package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/deepanshu0430/khana-client/internal/httpx"
)

// Client fetches catalog snapshots from the restaurant API.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: timeout, Transport: httpx.NewTransport(nil)},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Dishes returns the current catalog snapshot. The endpoint is public, so
// no credential is attached.
func (c *Client) Dishes(ctx context.Context) ([]Dish, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/dish", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, httpx.APIError(res, "failed to fetch dishes")
	}
	var body struct {
		Dishes []Dish `json:"dishes"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("catalog: decode response: %w", err)
	}
	return body.Dishes, nil
}
