package events

import (
	"time"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestAccepted  EventType = "request_accepted"
	EventRequestCompleted EventType = "request_completed"
	EventRequestAssigned  EventType = "request_assigned"
	EventFocusChanged     EventType = "focus_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StatusChangedPayload is attached to accept and complete events.
type StatusChangedPayload struct {
	OldStatus    domain.RequestStatus `json:"old_status"`
	NewStatus    domain.RequestStatus `json:"new_status"`
	RewardPoints int                  `json:"reward_points,omitempty"`
}

// RequestAssignedPayload payload.
type RequestAssignedPayload struct {
	DepartmentID string               `json:"department_id"`
	OldStatus    domain.RequestStatus `json:"old_status"`
	NewStatus    domain.RequestStatus `json:"new_status"`
}

// FocusChangedPayload payload. A nil RequestID means focus was cleared.
type FocusChangedPayload struct {
	RequestID *string `json:"request_id"`
}
