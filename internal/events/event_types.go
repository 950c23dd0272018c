package events

import (
	"time"

	"github.com/plandesk/admin-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventTicketCategoryChanged EventType = "ticket_category_changed"
	EventTicketCommentAdded    EventType = "ticket_comment_added"
	EventTransferRequested     EventType = "transfer_requested"
	EventTransferActioned      EventType = "transfer_actioned"
	EventTransferCancelled     EventType = "transfer_cancelled"
	EventPlansReordered        EventType = "plans_reordered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssignedTo *string `json:"assigned_to,omitempty"`
	AssignedBy *string `json:"assigned_by,omitempty"`
}

// TicketCategoryChangedPayload payload.
type TicketCategoryChangedPayload struct {
	OldCategoryID *string `json:"old_category_id,omitempty"`
	NewCategoryID *string `json:"new_category_id,omitempty"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	CommentID  string `json:"comment_id"`
	IsInternal bool   `json:"is_internal"`
	Preview    string `json:"preview"`
}

// TransferRequestedPayload payload.
type TransferRequestedPayload struct {
	TransferID string `json:"transfer_id"`
	ToAgent    string `json:"to_agent"`
	Reason     string `json:"reason"`
}

// TransferActionedPayload payload.
type TransferActionedPayload struct {
	TransferID string                `json:"transfer_id"`
	Status     domain.TransferStatus `json:"status"`
	Reason     string                `json:"reason,omitempty"`
}

// TransferCancelledPayload payload.
type TransferCancelledPayload struct {
	TransferID string `json:"transfer_id"`
}

// PlansReorderedPayload payload.
type PlansReorderedPayload struct {
	OrderedIDs []string `json:"ordered_ids"`
}
