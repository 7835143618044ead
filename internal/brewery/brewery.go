package brewery

import "fmt"

// CartItem is owned by the upstream API. This service only reads it; the
// user_id and inventory_id fields drive authorization and follow-up lookups.
type CartItem struct {
	ID          int `json:"id"`
	UserID      int `json:"user_id"`
	InventoryID int `json:"inventory_id"`
	Quantity    int `json:"quantity"`
}

// InventoryRecord carries the two upstream fields the cart service needs:
// stock to gate mutations and price to compute totals.
type InventoryRecord struct {
	StockQuantity float64 `json:"stockQuantity"`
	Price         float64 `json:"price"`
}

// AddItemPayload is forwarded to the upstream add endpoint as-is.
type AddItemPayload struct {
	UserID      int `json:"user_id"`
	InventoryID int `json:"inventory_id"`
	Quantity    int `json:"quantity"`
}

// APIError is an upstream response that carried a failure status. The
// status code and body fields are propagated to the caller verbatim.
type APIError struct {
	StatusCode int
	Message    string
	Detail     any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("brewery api: status %d: %s", e.StatusCode, e.Message)
}
