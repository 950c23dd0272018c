package domain

import "time"

// ActivityType captures what kind of change an audit entry records.
type ActivityType string

const (
	ActivityCreated           ActivityType = "CREATED"
	ActivityStatusChanged     ActivityType = "STATUS_CHANGED"
	ActivityAssigned          ActivityType = "ASSIGNED"
	ActivityReassigned        ActivityType = "REASSIGNED"
	ActivityUnassigned        ActivityType = "UNASSIGNED"
	ActivityCategoryChanged   ActivityType = "CATEGORY_CHANGED"
	ActivityCommentAdded      ActivityType = "COMMENT_ADDED"
	ActivityUpdated           ActivityType = "UPDATED"
	ActivityTransferRequested ActivityType = "TRANSFER_REQUESTED"
	ActivityTransferApproved  ActivityType = "TRANSFER_APPROVED"
	ActivityTransferRejected  ActivityType = "TRANSFER_REJECTED"
	ActivityTransferCancelled ActivityType = "TRANSFER_CANCELLED"
)

// ActivityMetadata carries the per-type optional fields of an entry. Only the
// fields relevant to the entry's type are set.
type ActivityMetadata struct {
	AssignedToName    string `json:"assignedToName,omitempty"`
	PreviousAgentName string `json:"previousAgentName,omitempty"`
	ToAgentName       string `json:"toAgentName,omitempty"`
	Reason            string `json:"reason,omitempty"`
	Details           string `json:"details,omitempty"`
}

// ActivityLogEntry is an immutable audit record of a single ticket change.
// PerformedBy is nil for system-generated entries.
type ActivityLogEntry struct {
	ID              string
	TicketID        string
	Type            ActivityType
	PerformedBy     *string
	PerformedByName string
	OldStatus       *TicketStatus
	NewStatus       *TicketStatus
	OldCategory     *string
	NewCategory     *string
	Metadata        ActivityMetadata
	CreatedAt       time.Time
}
