package cart

import (
	"errors"

	"github.com/brewday/cart-service/internal/brewery"
)

var (
	// ErrUnauthorized covers a missing actor and an owner mismatch alike;
	// callers get the same response either way so nothing leaks about which
	// check failed.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInsufficientStock means the requested quantity exceeds what the
	// upstream inventory reports.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// FieldError describes one failed payload rule. Validation always reports
// the full list, not just the first failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validateAddItem(p brewery.AddItemPayload) []FieldError {
	var errs []FieldError
	if p.UserID <= 0 {
		errs = append(errs, FieldError{Field: "user_id", Message: "must be a positive integer"})
	}
	if p.InventoryID <= 0 {
		errs = append(errs, FieldError{Field: "inventory_id", Message: "must be a positive integer"})
	}
	if p.Quantity <= 0 {
		errs = append(errs, FieldError{Field: "quantity", Message: "must be a positive integer"})
	}
	return errs
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (r updateItemRequest) validate() []FieldError {
	if r.Quantity <= 0 {
		return []FieldError{{Field: "quantity", Message: "must be a positive integer"}}
	}
	return nil
}
