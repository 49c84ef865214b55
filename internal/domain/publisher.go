package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Publisher is a news outlet articles are attributed to.
type Publisher struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	TotalNews int64              `bson:"totalNews" json:"totalNews"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
