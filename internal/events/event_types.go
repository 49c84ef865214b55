package events

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/daily-pulse/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventArticleCreated   EventType = "article_created"
	EventArticleViewed    EventType = "article_viewed"
	EventArticleModerated EventType = "article_moderated"
	EventArticleDeleted   EventType = "article_deleted"
	EventUserPromoted     EventType = "user_promoted"
	EventUserDeleted      EventType = "user_deleted"
)

// Actor identifies who caused an event. Email is empty for anonymous readers.
type Actor struct {
	Email string `json:"email,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string             `json:"id"`
	Type       EventType          `json:"type"`
	DocumentID primitive.ObjectID `json:"document_id"`
	Actor      Actor              `json:"actor"`
	Timestamp  time.Time          `json:"timestamp"`
	Payload    interface{}        `json:"payload,omitempty"`
}

// ArticleCreatedPayload payload.
type ArticleCreatedPayload struct {
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
}

// ArticleModeratedPayload payload.
type ArticleModeratedPayload struct {
	Status  domain.ArticleStatus `json:"status,omitempty"`
	Premium bool                 `json:"premium,omitempty"`
}
