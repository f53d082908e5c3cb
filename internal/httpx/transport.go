package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Transport is the client-side mirror of the middlewares: every outbound
// request carries an X-Request-ID and produces one log line with status and
// duration.
type Transport struct {
	Base http.RoundTripper
}

func NewTransport(base http.RoundTripper) *Transport {
	return &Transport{Base: base}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	rid := req.Header.Get("X-Request-ID")
	if rid == "" {
		rid = uuid.NewString()
		req = req.Clone(req.Context())
		req.Header.Set("X-Request-ID", rid)
	}
	start := time.Now()
	res, err := base.RoundTrip(req)
	if err != nil {
		log.Printf("[http] rid=%s %s %s err=%v dur=%s",
			rid, req.Method, req.URL.Path, err, time.Since(start))
		return nil, err
	}
	log.Printf("[http] rid=%s %s %s status=%d dur=%s",
		rid, req.Method, req.URL.Path, res.StatusCode, time.Since(start))
	return res, nil
}

// APIError turns a non-2xx response into an error carrying the server's
// {message} field when the body has one.
func APIError(res *http.Response, fallback string) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.Message != "" {
		return errors.New(body.Message)
	}
	return fmt.Errorf("%s (status %d)", fallback, res.StatusCode)
}
