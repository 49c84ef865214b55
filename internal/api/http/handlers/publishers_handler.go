package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/daily-pulse/internal/api/dto"
	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/service"
)

// PublishersHandler exposes publisher endpoints.
type PublishersHandler struct {
	publishers *service.PublisherService
}

// NewPublishersHandler constructs handler.
func NewPublishersHandler(publishers *service.PublisherService) *PublishersHandler {
	return &PublishersHandler{publishers: publishers}
}

// Create POST /publisher.
func (h *PublishersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePublisherRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	publisher := &domain.Publisher{Name: req.Name, Image: req.Image}
	if err := h.publishers.Create(c.UserContext(), publisher); err != nil {
		return err
	}
	return c.JSON(dto.Inserted(publisher.ID))
}

// List GET /publisher.
func (h *PublishersHandler) List(c *fiber.Ctx) error {
	publishers, err := h.publishers.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(publishers)
}
