package dto

// CreatePublisherRequest payload for POST /publisher.
type CreatePublisherRequest struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
}
