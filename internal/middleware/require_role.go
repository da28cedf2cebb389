package middleware

import (
	"oneasy-portal/internal/viewmode"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles lets the request through only when the caller's role is listed.
// It must run after JWTAuth.
func RequireRoles(roles ...viewmode.Role) fiber.Handler {
	allowed := make(map[viewmode.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		if !allowed[RoleFrom(c)] {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}
