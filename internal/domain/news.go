package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ArticleStatus is the moderation state of an article.
type ArticleStatus string

const (
	ArticleStatusPending  ArticleStatus = "Pending"
	ArticleStatusApproved ArticleStatus = "Approved"
	ArticleStatusDeclined ArticleStatus = "Declined"

	// ArticleStatusPremium is not stored as a status; moderators send it to
	// flag an article as subscriber-only.
	ArticleStatusPremium ArticleStatus = "premium"
)

// TrendingLimit caps the trending list.
const TrendingLimit = 6

// Article is a news item submitted by a reader.
type Article struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	Image        string             `bson:"image" json:"image"`
	Publisher    string             `bson:"publisher" json:"publisher"`
	Tags         []string           `bson:"tags" json:"tags"`
	Description  string             `bson:"description" json:"description"`
	AuthorName   string             `bson:"authorName,omitempty" json:"authorName,omitempty"`
	AuthorEmail  string             `bson:"authorEmail" json:"authorEmail"`
	AuthorImage  string             `bson:"authorImage,omitempty" json:"authorImage,omitempty"`
	Status       ArticleStatus      `bson:"status" json:"status"`
	Subscription bool               `bson:"subscription" json:"subscription"`
	Views        int64              `bson:"views" json:"views"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// ArticleEdit holds the author-editable fields. All of them are replaced.
type ArticleEdit struct {
	Title       string
	Tags        []string
	Publisher   string
	Description string
	Image       string
}
