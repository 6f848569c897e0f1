package middleware

import (
	"github.com/gofiber/fiber/v2"

	"vendorportal/internal/portal"
)

// BearerToken forwards the caller's Authorization bearer token to upstream portal calls.
// Requests without a token pass through; the upstream API decides whether to reject them.
func BearerToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok := portal.BearerToken(c.Get(fiber.HeaderAuthorization)); tok != "" {
			c.SetUserContext(portal.WithToken(c.UserContext(), tok))
		}
		return c.Next()
	}
}
