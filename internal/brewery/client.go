package brewery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client talks to the brewery API that owns cart, inventory and pricing
// state. Every call forwards the caller's bearer token unchanged. There is
// no retry logic: a failure is surfaced to the caller immediately.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, httpc: &http.Client{}}
}

func (c *Client) Inventory(ctx context.Context, token string, inventoryID int) (InventoryRecord, error) {
	var rec InventoryRecord
	err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/api/inventory/%d", inventoryID), nil, &rec)
	return rec, err
}

func (c *Client) AddCartItem(ctx context.Context, token string, payload AddItemPayload) (CartItem, error) {
	var item CartItem
	err := c.do(ctx, token, http.MethodPost, "/api/cart/add", payload, &item)
	return item, err
}

func (c *Client) Cart(ctx context.Context, token string, userID int) ([]CartItem, error) {
	var items []CartItem
	err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/api/cart/%d", userID), nil, &items)
	return items, err
}

func (c *Client) CartItem(ctx context.Context, token string, itemID int) (CartItem, error) {
	var item CartItem
	err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/api/cart/item/%d", itemID), nil, &item)
	return item, err
}

func (c *Client) UpdateCartItem(ctx context.Context, token string, itemID, quantity int) (CartItem, error) {
	var item CartItem
	body := map[string]int{"quantity": quantity}
	err := c.do(ctx, token, http.MethodPut, fmt.Sprintf("/api/cart/update/%d", itemID), body, &item)
	return item, err
}

// RemoveCartItem returns the upstream response body verbatim so the handler
// can relay whatever the upstream reports for a deletion.
func (c *Client) RemoveCartItem(ctx context.Context, token string, itemID int) (json.RawMessage, error) {
	var body json.RawMessage
	err := c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/api/cart/remove/%d", itemID), nil, &body)
	return body, err
}

func (c *Client) ClearCart(ctx context.Context, token string, userID int) error {
	return c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/api/cart/clear/%d", userID), nil, nil)
}

// do issues one request and decodes either the success body into out or a
// failure body into an APIError. Transport failures come back as plain
// errors so callers can tell them apart from upstream responses.
func (c *Client) do(ctx context.Context, token, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var failure struct {
			Message string `json:"message"`
			Errors  any    `json:"errors"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil {
			apiErr.Message = failure.Message
			apiErr.Detail = failure.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
