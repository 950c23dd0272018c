package dto

import (
	"time"

	"github.com/plandesk/admin-api/internal/domain"
)

// CreateCommentRequest is the payload for adding a comment to a ticket.
type CreateCommentRequest struct {
	Body            string  `json:"body"`
	ParentCommentID *string `json:"parentCommentId"`
	IsInternal      bool    `json:"isInternal"`
}

// UpdateCommentRequest is the payload for editing a comment.
type UpdateCommentRequest struct {
	Body string `json:"body"`
}

// CommentResponse is the API projection of a comment.
type CommentResponse struct {
	ID              string           `json:"id"`
	TicketID        string           `json:"ticketId"`
	ParentCommentID *string          `json:"parentCommentId"`
	IsInternal      bool             `json:"isInternal"`
	Body            string           `json:"body"`
	AuthorID        string           `json:"authorId"`
	AuthorType      domain.ActorType `json:"authorType"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:              comment.ID,
		TicketID:        comment.TicketID,
		ParentCommentID: comment.ParentCommentID,
		IsInternal:      comment.IsInternal,
		Body:            comment.Body,
		AuthorID:        comment.AuthorID,
		AuthorType:      comment.AuthorType,
		CreatedAt:       comment.CreatedAt,
		UpdatedAt:       comment.UpdatedAt,
	}
}

// NewCommentListResponse maps a slice of comments.
func NewCommentListResponse(comments []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return out
}
