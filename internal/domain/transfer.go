package domain

import "time"

// TransferStatus enumerates transfer request states. Approved, rejected and
// cancelled are terminal.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "PENDING"
	TransferStatusApproved  TransferStatus = "APPROVED"
	TransferStatusRejected  TransferStatus = "REJECTED"
	TransferStatusCancelled TransferStatus = "CANCELLED"
)

// Terminal reports whether the status admits no further changes.
func (s TransferStatus) Terminal() bool {
	return s == TransferStatusApproved || s == TransferStatusRejected || s == TransferStatusCancelled
}

// TransferRequest is a proposal to reassign a ticket between agents, subject
// to admin approval. At most one pending request exists per ticket.
type TransferRequest struct {
	ID           string
	TicketID     string
	Status       TransferStatus
	RequestedBy  string
	ToAgent      string
	Reason       string
	RequestedAt  time.Time
	ActionReason *string
	ActionedBy   *string
	ActionedAt   *time.Time
}
