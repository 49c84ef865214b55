package dto

import "time"

// TokenResponse is returned by POST /jwt.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateUserRequest payload for POST /users. Role and premium status are
// not accepted from clients.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	Image string `json:"image"`
}

// UserExistsResponse is returned instead of an insert result when the email
// is already registered.
type UserExistsResponse struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
}

// AdminStatusResponse answers GET /users/admin/:email.
type AdminStatusResponse struct {
	Admin bool `json:"admin"`
}
