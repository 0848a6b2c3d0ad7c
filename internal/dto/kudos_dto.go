package dto

import "github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"

type SubmitKudosRequest struct {
	RecipientID uint   `json:"recipient_id"`
	Message     string `json:"message"`
}

// ModerationRequest is the optional body of hide and delete.
type ModerationRequest struct {
	Reason string `json:"reason"`
}

type HideResponse struct {
	Message string                `json:"message"`
	Log     *models.ModerationLog `json:"log"`
}

// ListResponse is the envelope for every paginated listing.
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}
