package dto

import (
	"encoding/json"
	"time"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
)

// ActivityLogResponse is the API shape of one audit entry.
type ActivityLogResponse struct {
	ID        string          `json:"id"`
	User      string          `json:"user"`
	Action    string          `json:"action"`
	Details   string          `json:"details"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToActivityLogResponse maps the entity to its API shape.
func ToActivityLogResponse(e *entity.ActivityLog) *ActivityLogResponse {
	if e == nil {
		return nil
	}
	return &ActivityLogResponse{
		ID:        e.ID,
		User:      e.User,
		Action:    e.Action,
		Details:   e.Details,
		Payload:   e.Payload,
		CreatedAt: e.CreatedAt,
	}
}
