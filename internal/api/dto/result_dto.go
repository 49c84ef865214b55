package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/daily-pulse/internal/domain"
)

// InsertResponse mirrors a document store insert acknowledgement.
type InsertResponse struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

// UpdateResponse mirrors a document store update acknowledgement. Updates
// never upsert, so the upsert fields are always zero.
type UpdateResponse struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

// DeleteResponse mirrors a document store delete acknowledgement.
type DeleteResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Inserted builds an insert acknowledgement.
func Inserted(id primitive.ObjectID) InsertResponse {
	return InsertResponse{Acknowledged: true, InsertedID: id}
}

// Updated builds an update acknowledgement.
func Updated(out domain.UpdateOutcome) UpdateResponse {
	return UpdateResponse{
		Acknowledged:  true,
		MatchedCount:  out.MatchedCount,
		ModifiedCount: out.ModifiedCount,
	}
}

// Deleted builds a delete acknowledgement.
func Deleted(n int64) DeleteResponse {
	return DeleteResponse{Acknowledged: true, DeletedCount: n}
}
