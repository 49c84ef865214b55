package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole represents the stored role of a reader account.
type UserRole string

const (
	// UserRoleAdmin grants access to moderation and user management routes.
	UserRoleAdmin UserRole = "admin"
)

// User is a reader account. Email is the unique key.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Role      UserRole           `bson:"role,omitempty" json:"role,omitempty"`
	IsPremium bool               `bson:"isPremium" json:"isPremium"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// IsAdmin reports whether the stored role is admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

// UserStats summarizes the subscriber base.
type UserStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	PremiumUsers int64 `json:"premiumUsers"`
	NormalUsers  int64 `json:"normalUsers"`
}
