package cart

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/brewday/cart-service/internal/auth"
	"github.com/brewday/cart-service/internal/brewery"
)

// Handler delegates cart operations to the cart service. Payload shape is
// validated here, before the service issues any upstream call.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/cart/add", h.addToCart)
	app.Get("/cart/:user_id/total", h.getCartTotal)
	app.Get("/cart/:user_id", h.getCart)
	app.Put("/cart/update/:id", h.updateItem)
	app.Delete("/cart/remove/:id", h.removeItem)
	app.Delete("/cart/clear/:user_id", h.clearCart)
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(brewery.AddItemPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if errs := validateAddItem(*payload); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	actor, err := auth.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	item, err := h.service.AddToCart(c.UserContext(), auth.TokenFromCtx(c), actor, *payload)
	if err != nil {
		return respondOperationError(c, err, "Error adding to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user_id"})
	}

	actor, err := auth.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	items, err := h.service.GetCart(c.UserContext(), auth.TokenFromCtx(c), actor, userID)
	if err != nil {
		return respondOperationError(c, err, "Error fetching cart")
	}
	return c.JSON(items)
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid item id"})
	}

	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if errs := payload.validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	actor, err := auth.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	item, err := h.service.UpdateItem(c.UserContext(), auth.TokenFromCtx(c), actor, itemID, payload.Quantity)
	if err != nil {
		return respondOperationError(c, err, "Error updating cart item")
	}
	return c.JSON(item)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid item id"})
	}

	actor, err := auth.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	body, err := h.service.RemoveItem(c.UserContext(), auth.TokenFromCtx(c), actor, itemID)
	if err != nil {
		return respondOperationError(c, err, "Error removing cart item")
	}
	if len(body) == 0 {
		return c.SendStatus(fiber.StatusOK)
	}
	c.Set("Content-Type", "application/json")
	return c.Status(fiber.StatusOK).Send(body)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user_id"})
	}

	actor, err := auth.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	if err := h.service.ClearCart(c.UserContext(), auth.TokenFromCtx(c), actor, userID); err != nil {
		return respondOperationError(c, err, "Error clearing cart")
	}
	// success is reported with a fixed message regardless of upstream body
	return c.JSON(fiber.Map{"message": "cart cleared"})
}

func (h *Handler) getCartTotal(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user_id"})
	}

	actor, err := auth.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	total, err := h.service.CartTotal(c.UserContext(), auth.TokenFromCtx(c), actor, userID)
	if err != nil {
		return respondOperationError(c, err, "Error calculating cart total")
	}
	return c.JSON(fiber.Map{"total": total})
}

func respondUnauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "unauthorized"})
}

// respondOperationError maps a service failure onto the wire. Upstream
// failures keep their status code and body fields; anything without an
// upstream response becomes a 500 carrying the operation's default message
// and the raw failure description.
func respondOperationError(c *fiber.Ctx, err error, fallback string) error {
	var apiErr *brewery.APIError
	switch {
	case errors.Is(err, ErrUnauthorized):
		return respondUnauthorized(c)
	case errors.Is(err, ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "insufficient stock"})
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		body := fiber.Map{"message": msg}
		if apiErr.Detail != nil {
			body["error"] = apiErr.Detail
		}
		return c.Status(apiErr.StatusCode).JSON(body)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": fallback, "error": err.Error()})
	}
}
