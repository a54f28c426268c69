package response

import (
	"encoding/json"
	"time"

	"hotel-booking/internal/data/entity"
)

type NotificationResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
	Processed bool            `json:"processed"`
	Read      bool            `json:"read"`
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	var payload json.RawMessage
	if len(n.Payload) > 0 {
		payload = json.RawMessage(n.Payload)
	}
	return NotificationResponse{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Payload:   payload,
		CreatedAt: n.CreatedAt,
		Processed: n.Processed,
		Read:      n.Read,
	}
}
