package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/daily-pulse/internal/domain"
	apperrors "github.com/spec-kit/daily-pulse/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Client-facing messages. Missing, malformed, tampered and expired tokens all
// produce the same unauthorized body.
const (
	UnauthorizedMessage = "unauthorized access"
	ForbiddenMessage    = "forbidden access"
)

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	ParseToken(token string) (Claims, error)
}

// AuthMiddleware validates bearer tokens and attaches the principal.
type AuthMiddleware struct {
	tokens TokenVerifier
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return unauthorized(ErrMissingToken)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return unauthorized(ErrInvalidOrExpired)
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return unauthorized(err)
	}

	c.Locals(principalKey, &domain.Principal{
		Email:  claims.Email(),
		Claims: claims,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	principal, ok := c.Locals(principalKey).(*domain.Principal)
	return principal, ok && principal != nil
}

func unauthorized(cause error) error {
	return apperrors.NewUnauthorized(UnauthorizedMessage).WithCause(cause)
}

func forbidden() error {
	return apperrors.NewForbidden(ForbiddenMessage).WithCause(ErrForbidden)
}
