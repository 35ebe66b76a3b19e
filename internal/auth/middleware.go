package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/users-service/internal/domain"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

const callerKey = "auth_caller"

// ServiceMiddleware validates bearer tokens presented by internal callers.
type ServiceMiddleware struct {
	tokens *TokenManager
}

// NewServiceMiddleware constructs middleware.
func NewServiceMiddleware(tokens *TokenManager) *ServiceMiddleware {
	return &ServiceMiddleware{tokens: tokens}
}

// Handle enforces a valid service token.
func (m *ServiceMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(callerKey, claims)
	return c.Next()
}

// RequireScope ensures the authenticated caller holds scope.
func RequireScope(scope domain.ServiceScope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := CallerFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !claims.HasScope(scope) {
			return apperrors.NewDomainError("FORBIDDEN", "insufficient scope", fiber.StatusForbidden, map[string]any{"scope": scope})
		}
		return c.Next()
	}
}

// CallerFromContext retrieves the authenticated service claims.
func CallerFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(callerKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
