package events

import "time"

const RequestStatusChangedEventType = "request.status_changed"

type RequestStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  int       `json:"request_id"`
	UserID     int       `json:"user_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Comments   *string   `json:"comments,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
