package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/nueltech/catalog-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller as decoded from verified
// token claims. No store lookup happens here: the admin flag is the
// issuance-time snapshot embedded in the token.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// AuthMiddleware validates bearer tokens on protected routes.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication. Checks run in order and the first
// failure wins: missing header, malformed header, bad scheme, then
// signature/expiry verification.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 {
		return apperrors.NewUnauthorized("malformed authorization header")
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("malformed authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(principalKey, &Principal{UserID: claims.UserID(), IsAdmin: claims.IsAdmin})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
