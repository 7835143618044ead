package cart

import (
	"context"
	"encoding/json"

	"github.com/brewday/cart-service/internal/auth"
	"github.com/brewday/cart-service/internal/brewery"
)

// Upstream is the slice of the brewery API the cart service consumes.
// *brewery.Client satisfies it; tests swap in a fake.
type Upstream interface {
	Inventory(ctx context.Context, token string, inventoryID int) (brewery.InventoryRecord, error)
	AddCartItem(ctx context.Context, token string, payload brewery.AddItemPayload) (brewery.CartItem, error)
	Cart(ctx context.Context, token string, userID int) ([]brewery.CartItem, error)
	CartItem(ctx context.Context, token string, itemID int) (brewery.CartItem, error)
	UpdateCartItem(ctx context.Context, token string, itemID, quantity int) (brewery.CartItem, error)
	RemoveCartItem(ctx context.Context, token string, itemID int) (json.RawMessage, error)
	ClearCart(ctx context.Context, token string, userID int) error
}

// Service runs each cart operation as a short chain of sequential upstream
// calls with the ownership and stock gates applied between them. The
// service holds no state of its own; every read and mutation is delegated.
type Service struct {
	upstream Upstream
}

func NewService(u Upstream) *Service {
	return &Service{upstream: u}
}

// AddToCart checks ownership and stock before issuing the add mutation.
// The stock check and the mutation are separate upstream calls; the window
// between them is not atomic against concurrent callers.
func (s *Service) AddToCart(ctx context.Context, token string, actor auth.Actor, req brewery.AddItemPayload) (brewery.CartItem, error) {
	if actor.ID != req.UserID {
		return brewery.CartItem{}, ErrUnauthorized
	}
	inv, err := s.upstream.Inventory(ctx, token, req.InventoryID)
	if err != nil {
		return brewery.CartItem{}, err
	}
	if inv.StockQuantity < float64(req.Quantity) {
		return brewery.CartItem{}, ErrInsufficientStock
	}
	return s.upstream.AddCartItem(ctx, token, req)
}

func (s *Service) GetCart(ctx context.Context, token string, actor auth.Actor, userID int) ([]brewery.CartItem, error) {
	if actor.ID != userID {
		return nil, ErrUnauthorized
	}
	return s.upstream.Cart(ctx, token, userID)
}

// UpdateItem fetches the item first: the owner is not known until the
// upstream returns it, so the ownership gate necessarily runs after that
// read. The stock gate then applies to the item's inventory record.
func (s *Service) UpdateItem(ctx context.Context, token string, actor auth.Actor, itemID, quantity int) (brewery.CartItem, error) {
	item, err := s.upstream.CartItem(ctx, token, itemID)
	if err != nil {
		return brewery.CartItem{}, err
	}
	if actor.ID != item.UserID {
		return brewery.CartItem{}, ErrUnauthorized
	}
	inv, err := s.upstream.Inventory(ctx, token, item.InventoryID)
	if err != nil {
		return brewery.CartItem{}, err
	}
	if inv.StockQuantity < float64(quantity) {
		return brewery.CartItem{}, ErrInsufficientStock
	}
	return s.upstream.UpdateCartItem(ctx, token, itemID, quantity)
}

// RemoveItem relays the upstream deletion body verbatim on success.
func (s *Service) RemoveItem(ctx context.Context, token string, actor auth.Actor, itemID int) (json.RawMessage, error) {
	item, err := s.upstream.CartItem(ctx, token, itemID)
	if err != nil {
		return nil, err
	}
	if actor.ID != item.UserID {
		return nil, ErrUnauthorized
	}
	return s.upstream.RemoveCartItem(ctx, token, itemID)
}

func (s *Service) ClearCart(ctx context.Context, token string, actor auth.Actor, userID int) error {
	if actor.ID != userID {
		return ErrUnauthorized
	}
	return s.upstream.ClearCart(ctx, token, userID)
}

// CartTotal sums price*quantity over the cart. Inventory records are
// fetched one item at a time; the first failure aborts the loop and is
// reported as the operation's failure.
func (s *Service) CartTotal(ctx context.Context, token string, actor auth.Actor, userID int) (float64, error) {
	if actor.ID != userID {
		return 0, ErrUnauthorized
	}
	items, err := s.upstream.Cart(ctx, token, userID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, item := range items {
		inv, err := s.upstream.Inventory(ctx, token, item.InventoryID)
		if err != nil {
			return 0, err
		}
		total += inv.Price * float64(item.Quantity)
	}
	return total, nil
}
