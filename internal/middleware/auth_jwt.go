package middleware

import (
	"strings"

	"oneasy-portal/internal/auth"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// JWTAuth requires a valid bearer token and stores the caller's id and role
// in Locals.
func JWTAuth(tokens *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := tokens.Parse(strings.TrimSpace(header[7:]))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		if !claims.Role.Valid() {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid role")
		}

		c.Locals(LocalUserID, claims.UID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}
