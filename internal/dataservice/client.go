// Package dataservice is the HTTP adapter to the external order data
// service. The console owns no persistence: every order lives behind this
// API and every call carries the admin's bearer token.
package dataservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ariefcatur/go-backoffice-orders.git/internal/orders"
)

type tokenKey struct{}

// WithToken attaches the admin session's bearer token to the context. The
// token is opaque here — issued and validated by the auth collaborator.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)
	return t
}

type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// do runs one request and maps the response onto the error taxonomy. No
// retry di sini: gagal sekali, surface sekali, admin yang retry manual.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := tokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %v: %w", method, path, err, orders.ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %d %s: %w", method, path, resp.StatusCode, snippet, mapStatus(resp.StatusCode))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %v: %w", method, path, err, orders.ErrNetwork)
		}
	}
	return nil
}

func mapStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return orders.ErrUnauthorized
	case http.StatusNotFound:
		return orders.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return orders.ErrValidation
	case http.StatusConflict:
		return orders.ErrConflict
	default:
		return orders.ErrNetwork
	}
}

// List fetches all orders visible to the administrator. Filtering is a
// presentation concern (lihat collection.go), bukan server-side.
func (c *Client) List(ctx context.Context) ([]orders.Order, error) {
	var out []orders.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (orders.Order, error) {
	var out orders.Order
	err := c.do(ctx, http.MethodGet, "/orders/"+strconv.FormatInt(id, 10), nil, nil, &out)
	return out, err
}

// Update sends {clientId, total, status, items} as a full replacement of
// the mutable fields.
func (c *Client) Update(ctx context.Context, id int64, patch orders.UpdatePayload) (orders.Order, error) {
	var out orders.Order
	err := c.do(ctx, http.MethodPut, "/orders/"+strconv.FormatInt(id, 10), nil, patch, &out)
	return out, err
}

// Delete removes an order. Id goes as a query parameter — that is the
// collaborator's existing contract, not a path segment.
func (c *Client) Delete(ctx context.Context, id int64) error {
	q := url.Values{"id": []string{strconv.FormatInt(id, 10)}}
	return c.do(ctx, http.MethodDelete, "/orders", q, nil, nil)
}

// Reorder duplicates sourceID server-side: new id, code and createdAt,
// items and clientId copied, status reset to pending. Non-idempotent by
// contract — every call creates a new order.
func (c *Client) Reorder(ctx context.Context, sourceID int64) (orders.Order, error) {
	var out orders.Order
	err := c.do(ctx, http.MethodPost, "/orders/reorder", nil, orders.ReorderRequest{OrderID: sourceID}, &out)
	return out, err
}

// GetClient resolves one client record (company name, phone). Used by the
// notifier for SMS addressing.
func (c *Client) GetClient(ctx context.Context, id int64) (orders.Client, error) {
	var out orders.Client
	err := c.do(ctx, http.MethodGet, "/clients/"+strconv.FormatInt(id, 10), nil, nil, &out)
	return out, err
}

var _ orders.Repository = (*Client)(nil)
