package events

import "time"

const RequestLifecycleTopic = "vacation.request.lifecycle.v1"

const RequestSubmittedEventType = "request.submitted"

type RequestSubmittedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  int       `json:"request_id"`
	UserID     int       `json:"user_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}
