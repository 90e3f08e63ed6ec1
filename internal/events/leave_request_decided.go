package events

import "time"

const LeaveRequestDecidedTopic = "leave.request.decided.v1"

type LeaveRequestDecidedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id"`
	OrganizationID string    `json:"organization_id"`
	Stage          string    `json:"stage"`
	Decision       string    `json:"decision"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
