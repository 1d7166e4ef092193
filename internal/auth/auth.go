// Package auth holds the pieces of request authentication shared by every
// protected handler.
package auth

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// UserIDFromCtx extracts the user_id claim from the JWT token stored in
// `c.Locals("user")` by the auth middleware.
func UserIDFromCtx(c *fiber.Ctx) (int, error) {
	u := c.Locals("user")
	if u == nil {
		return 0, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	if raw, ok := claims["user_id"]; ok {
		switch v := raw.(type) {
		case float64:
			return int(v), nil
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case string:
			id, err := strconv.Atoi(v)
			if err != nil {
				return 0, fiber.ErrUnauthorized
			}
			return id, nil
		default:
			return 0, fiber.ErrUnauthorized
		}
	}
	return 0, fiber.ErrUnauthorized
}
