package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireActive rejects callers whose account is not active.
func RequireActive() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		if err := CheckActive(identity); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequirePrivileged restricts a route to admins and moderators.
func RequirePrivileged() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		if err := CheckPrivileged(identity); err != nil {
			return err
		}
		return c.Next()
	}
}
