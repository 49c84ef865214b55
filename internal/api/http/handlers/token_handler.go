package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/daily-pulse/internal/api/dto"
	"github.com/spec-kit/daily-pulse/internal/auth"
	apperrors "github.com/spec-kit/daily-pulse/pkg/util/errorutil"
)

// TokenHandler issues bearer tokens.
type TokenHandler struct {
	tokens *auth.TokenManager
}

// NewTokenHandler constructs handler.
func NewTokenHandler(tokens *auth.TokenManager) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Issue handles POST /jwt. The JSON body becomes the token claims as sent.
func (h *TokenHandler) Issue(c *fiber.Ctx) error {
	claims := map[string]any{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&claims); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	token, exp, err := h.tokens.Issue(claims)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.TokenResponse{Token: token, ExpiresAt: exp})
}
