package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/daily-pulse/internal/api/dto"
	"github.com/spec-kit/daily-pulse/internal/auth"
	"github.com/spec-kit/daily-pulse/internal/domain"
	"github.com/spec-kit/daily-pulse/internal/service"
)

// NewsHandler exposes article endpoints.
type NewsHandler struct {
	news *service.NewsService
}

// NewNewsHandler constructs handler.
func NewNewsHandler(news *service.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

// Create POST /news.
func (h *NewsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateArticleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	principal, _ := auth.PrincipalFromContext(c)
	article := req.Article()
	if err := h.news.Create(c.UserContext(), principal, article); err != nil {
		return err
	}
	return c.JSON(dto.Inserted(article.ID))
}

// List GET /news.
func (h *NewsHandler) List(c *fiber.Ctx) error {
	return h.respond(c, h.news.ListAll)
}

// ListByAuthor GET /news/user/:email.
func (h *NewsHandler) ListByAuthor(c *fiber.Ctx) error {
	email, err := textParam(c, "email")
	if err != nil {
		return err
	}
	articles, err := h.news.ListByAuthor(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(articles)
}

// ListApproved GET /news/status.
func (h *NewsHandler) ListApproved(c *fiber.Ctx) error {
	return h.respond(c, h.news.ListApproved)
}

// ListPremium GET /news/premium.
func (h *NewsHandler) ListPremium(c *fiber.Ctx) error {
	return h.respond(c, h.news.ListPremium)
}

// Trending GET /trendingNews.
func (h *NewsHandler) Trending(c *fiber.Ctx) error {
	return h.respond(c, h.news.Trending)
}

// SearchByTitle GET /news/title/:name.
func (h *NewsHandler) SearchByTitle(c *fiber.Ctx) error {
	name, err := textParam(c, "name")
	if err != nil {
		return err
	}
	articles, err := h.news.SearchByTitle(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(articles)
}

// SearchByPublisher GET /news/publisher/:name.
func (h *NewsHandler) SearchByPublisher(c *fiber.Ctx) error {
	name, err := textParam(c, "name")
	if err != nil {
		return err
	}
	articles, err := h.news.SearchByPublisher(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(articles)
}

// Get GET /news/:id.
func (h *NewsHandler) Get(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	article, err := h.news.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.ArticleResponse{Result: article})
}

// UpdateStatus PATCH /news/updateStatus/:id.
func (h *NewsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	principal, _ := auth.PrincipalFromContext(c)
	out, err := h.news.UpdateStatus(c.UserContext(), principal, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.Updated(out))
}

// Update PATCH /news/:id.
func (h *NewsHandler) Update(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateArticleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	out, err := h.news.Update(c.UserContext(), id, req.Edit())
	if err != nil {
		return err
	}
	return c.JSON(dto.Updated(out))
}

// Delete DELETE /news/:id.
func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}
	principal, _ := auth.PrincipalFromContext(c)
	deleted, err := h.news.Delete(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.Deleted(deleted))
}

func (h *NewsHandler) respond(c *fiber.Ctx, list func(ctx context.Context) ([]domain.Article, error)) error {
	articles, err := list(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(articles)
}
