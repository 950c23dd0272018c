package dto

import (
	"time"

	"github.com/plandesk/admin-api/internal/domain"
)

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// AssignCategoryRequest payload. CategoryID null clears the category;
// CreateName backs the create-on-search-miss flow.
type AssignCategoryRequest struct {
	CategoryID *string `json:"categoryId"`
	CreateName string  `json:"createName,omitempty"`
}

// AssignRequest payload. A null AssignedTo unassigns the ticket.
type AssignRequest struct {
	AssignedTo *string `json:"assignedTo"`
}

// TransferCreateRequest payload.
type TransferCreateRequest struct {
	ToAgent string `json:"toAgent"`
	Reason  string `json:"reason"`
}

// TransferManageRequest payload.
type TransferManageRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

// TransferResponse projects a transfer request.
type TransferResponse struct {
	ID           string                `json:"id"`
	TicketID     string                `json:"ticketId"`
	Status       domain.TransferStatus `json:"status"`
	RequestedBy  string                `json:"requestedBy"`
	ToAgent      string                `json:"toAgent"`
	Reason       string                `json:"reason"`
	RequestedAt  time.Time             `json:"requestedAt"`
	ActionReason *string               `json:"actionReason,omitempty"`
	ActionedBy   *string               `json:"actionedBy,omitempty"`
	ActionedAt   *time.Time            `json:"actionedAt,omitempty"`
}

// TicketResponse projects a support ticket.
type TicketResponse struct {
	ID              string              `json:"id"`
	Subject         string              `json:"subject"`
	Description     string              `json:"description"`
	Status          domain.TicketStatus `json:"status"`
	CategoryID      *string             `json:"categoryId"`
	AssignedTo      *string             `json:"assignedTo"`
	AssignedBy      *string             `json:"assignedBy"`
	CreatedBy       *string             `json:"createdBy"`
	GuestName       *string             `json:"guestName,omitempty"`
	GuestEmail      *string             `json:"guestEmail,omitempty"`
	Attachments     []AttachmentInfo    `json:"attachments"`
	TransferRequest *TransferResponse   `json:"transferRequest,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// AttachmentInfo pairs a stored attachment value with its resolved URL.
type AttachmentInfo struct {
	FileName string `json:"fileName"`
	URL      string `json:"url"`
}

// TicketListResponse wraps a page of tickets.
type TicketListResponse struct {
	Items      []TicketResponse `json:"items"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
}

// NewTransferResponse maps a domain transfer request.
func NewTransferResponse(req *domain.TransferRequest) *TransferResponse {
	if req == nil {
		return nil
	}
	return &TransferResponse{
		ID:           req.ID,
		TicketID:     req.TicketID,
		Status:       req.Status,
		RequestedBy:  req.RequestedBy,
		ToAgent:      req.ToAgent,
		Reason:       req.Reason,
		RequestedAt:  req.RequestedAt,
		ActionReason: req.ActionReason,
		ActionedBy:   req.ActionedBy,
		ActionedAt:   req.ActionedAt,
	}
}

// NewTicketResponse maps a domain ticket, resolving attachment URLs.
func NewTicketResponse(ticket *domain.SupportTicket, resolver AttachmentResolver) TicketResponse {
	attachments := make([]AttachmentInfo, 0, len(ticket.Attachments))
	for _, att := range ticket.Attachments {
		attachments = append(attachments, AttachmentInfo{
			FileName: att,
			URL:      resolver.Resolve(att),
		})
	}
	return TicketResponse{
		ID:              ticket.ID,
		Subject:         ticket.Subject,
		Description:     ticket.Description,
		Status:          ticket.Status,
		CategoryID:      ticket.CategoryID,
		AssignedTo:      ticket.AssignedTo,
		AssignedBy:      ticket.AssignedBy,
		CreatedBy:       ticket.CreatedBy,
		GuestName:       ticket.GuestName,
		GuestEmail:      ticket.GuestEmail,
		Attachments:     attachments,
		TransferRequest: NewTransferResponse(ticket.TransferRequest),
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
	}
}
