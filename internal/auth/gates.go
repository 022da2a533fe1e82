package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/nueltech/catalog-service/pkg/util"
)

// RequireAuthenticated ensures a principal was attached by the bearer
// middleware. Useful for routes that accept any authenticated user.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the authenticated principal carries the admin flag.
// A valid non-admin token is rejected with 403, not 401.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.IsAdmin {
			return apperrors.NewForbidden("admin privileges required")
		}
		return c.Next()
	}
}
