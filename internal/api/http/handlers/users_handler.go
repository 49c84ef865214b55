package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/daily-pulse/internal/api/dto"
	"github.com/spec-kit/daily-pulse/internal/auth"
	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/service"
)

// UsersHandler exposes reader account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Stats handles GET /length.
func (h *UsersHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.users.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetByEmail handles GET /premiumUser/:email. An unknown email yields null.
func (h *UsersHandler) GetByEmail(c *fiber.Ctx) error {
	email, err := textParam(c, "email")
	if err != nil {
		return err
	}
	user, err := h.users.FindByEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// AdminStatus handles GET /users/admin/:email.
func (h *UsersHandler) AdminStatus(c *fiber.Ctx) error {
	email, err := textParam(c, "email")
	if err != nil {
		return err
	}
	admin, err := h.users.IsAdmin(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(dto.AdminStatusResponse{Admin: admin})
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user := &domain.User{Name: req.Name, Email: req.Email, Image: req.Image}
	created, err := h.users.Register(c.UserContext(), user)
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(dto.UserExistsResponse{Message: "user already exist"})
	}
	return c.JSON(dto.Inserted(user.ID))
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	principal, _ := auth.PrincipalFromContext(c)
	deleted, err := h.users.Delete(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.Deleted(deleted))
}

// Promote handles PATCH /users/admin/:id.
func (h *UsersHandler) Promote(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	principal, _ := auth.PrincipalFromContext(c)
	out, err := h.users.PromoteToAdmin(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.Updated(out))
}

// MarkPremium handles PATCH /users/payment/:email.
func (h *UsersHandler) MarkPremium(c *fiber.Ctx) error {
	email, err := textParam(c, "email")
	if err != nil {
		return err
	}
	out, err := h.users.MarkPremium(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(dto.Updated(out))
}
