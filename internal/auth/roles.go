package auth

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/repository"
	apperrors "github.com/spec-kit/daily-pulse/pkg/util/errorutil"
)

// UserLookup is the part of the user store the admin gate reads.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// RequireAdmin ensures the caller's stored user record has the admin role.
// It must run after AuthMiddleware.Handle. The role is always read from the
// store, never from token claims, so a demotion takes effect on the next
// request even though the caller's token stays valid until it expires.
func RequireAdmin(users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return unauthorized(ErrMissingToken)
		}
		if principal.Email == "" {
			return forbidden()
		}

		user, err := users.GetByEmail(c.UserContext(), principal.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return forbidden()
			}
			return apperrors.NewInternalError(err)
		}
		if !user.IsAdmin() {
			return forbidden()
		}

		principal.Role = domain.UserRoleAdmin
		return c.Next()
	}
}

// RequireSelf ensures the email path parameter names the caller.
func RequireSelf(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return unauthorized(ErrMissingToken)
		}
		email, err := url.PathUnescape(c.Params(param))
		if err != nil || principal.Email == "" || principal.Email != email {
			return forbidden()
		}
		return c.Next()
	}
}
