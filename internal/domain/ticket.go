package domain

import "time"

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "PENDING"
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ValidTicketStatus reports whether the value is a known status.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusPending, TicketStatusOpen, TicketStatusInProgress,
		TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// SupportTicket is the aggregate for support requests.
// CreatedBy is nil for public submissions; GuestName/GuestEmail identify the
// submitter in that case.
type SupportTicket struct {
	ID              string
	Subject         string
	Description     string
	Status          TicketStatus
	CategoryID      *string
	AssignedTo      *string
	AssignedBy      *string
	CreatedBy       *string
	GuestName       *string
	GuestEmail      *string
	Attachments     []string
	TransferRequest *TransferRequest
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasPendingTransfer reports whether an active transfer request is attached.
func (t *SupportTicket) HasPendingTransfer() bool {
	return t.TransferRequest != nil && t.TransferRequest.Status == TransferStatusPending
}
