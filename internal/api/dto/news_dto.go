package dto

import "github.com/spec-kit/daily-pulse/internal/domain"

// CreateArticleRequest payload for POST /news.
type CreateArticleRequest struct {
	Title       string   `json:"title" validate:"required"`
	Image       string   `json:"image"`
	Publisher   string   `json:"publisher"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	AuthorName  string   `json:"authorName"`
	AuthorEmail string   `json:"authorEmail" validate:"omitempty,email"`
	AuthorImage string   `json:"authorImage"`
}

// Article converts the payload into a new article.
func (r CreateArticleRequest) Article() *domain.Article {
	return &domain.Article{
		Title:       r.Title,
		Image:       r.Image,
		Publisher:   r.Publisher,
		Tags:        r.Tags,
		Description: r.Description,
		AuthorName:  r.AuthorName,
		AuthorEmail: r.AuthorEmail,
		AuthorImage: r.AuthorImage,
	}
}

// UpdateArticleRequest payload for PATCH /news/:id. Every field is written,
// absent ones as their zero value.
type UpdateArticleRequest struct {
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Publisher   string   `json:"publisher"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

// Edit converts the payload into an article edit.
func (r UpdateArticleRequest) Edit() domain.ArticleEdit {
	return domain.ArticleEdit{
		Title:       r.Title,
		Tags:        r.Tags,
		Publisher:   r.Publisher,
		Description: r.Description,
		Image:       r.Image,
	}
}

// UpdateStatusRequest payload for PATCH /news/updateStatus/:id.
type UpdateStatusRequest struct {
	Status domain.ArticleStatus `json:"status" validate:"required"`
}

// ArticleResponse wraps a single article.
type ArticleResponse struct {
	Result *domain.Article `json:"result"`
}
