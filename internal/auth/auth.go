package auth

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Actor is the authenticated caller as established by the JWT middleware.
type Actor struct {
	ID    int
	Email string
}

// FromCtx extracts the actor from the verified token stored in
// `c.Locals("user")` by the JWT middleware. A missing token or a missing
// or malformed user_id claim both count as "no actor".
func FromCtx(c *fiber.Ctx) (Actor, error) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok || tok == nil {
		return Actor{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, fiber.ErrUnauthorized
	}

	actor := Actor{}
	if email, ok := claims["email"].(string); ok {
		actor.Email = email
	}

	raw, ok := claims["user_id"]
	if !ok {
		return Actor{}, fiber.ErrUnauthorized
	}
	// JSON numbers decode as float64, but tokens minted elsewhere may carry
	// the id as a string or native int
	switch v := raw.(type) {
	case float64:
		actor.ID = int(v)
	case int:
		actor.ID = v
	case int64:
		actor.ID = int(v)
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return Actor{}, fiber.ErrUnauthorized
		}
		actor.ID = id
	default:
		return Actor{}, fiber.ErrUnauthorized
	}
	return actor, nil
}

// TokenFromCtx returns the raw signed bearer token so outbound calls can
// forward it unchanged. Empty when unauthenticated.
func TokenFromCtx(c *fiber.Ctx) string {
	if tok, ok := c.Locals("user").(*jwt.Token); ok && tok != nil {
		return tok.Raw
	}
	return ""
}
