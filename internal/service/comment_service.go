package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/plandesk/admin-api/internal/domain"
	"github.com/plandesk/admin-api/internal/events"
	"github.com/plandesk/admin-api/internal/repository"
	apperrors "github.com/plandesk/admin-api/pkg/util"
)

// CommentService manages ticket comment threads.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	activity   repository.ActivityRepository
	dispatcher events.Dispatcher
}

// CommentDependencies bundles repositories for the comment service.
type CommentDependencies struct {
	CommentRepo  repository.CommentRepository
	TicketRepo   repository.TicketRepository
	ActivityRepo repository.ActivityRepository
	Dispatcher   events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:   deps.CommentRepo,
		tickets:    deps.TicketRepo,
		activity:   deps.ActivityRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Add appends a comment to a ticket thread. Replies must reference a parent
// on the same ticket; internal comments are restricted to staff.
func (s *CommentService) Add(ctx context.Context, actor *domain.User, ticketID, body string, parentCommentID *string, isInternal bool) (*domain.Comment, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("comment body required", nil)
	}
	if isInternal && !actor.IsStaff() {
		return nil, apperrors.NewForbidden("internal comments are staff only")
	}

	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	if parentCommentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentCommentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("parent comment", map[string]any{"comment_id": *parentCommentID})
			}
			return nil, apperrors.MapError(err)
		}
		if parent.TicketID != ticketID {
			return nil, apperrors.NewValidationError("parent comment belongs to another ticket", nil)
		}
	}

	actorType := domain.ActorTypeUser
	if actor.Role == domain.RoleAdmin {
		actorType = domain.ActorTypeAdmin
	}

	comment := &domain.Comment{
		TicketID:        ticketID,
		ParentCommentID: parentCommentID,
		IsInternal:      isInternal,
		Body:            body,
		AuthorID:        actor.ID,
		AuthorType:      actorType,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.activity != nil {
		_ = s.activity.Create(ctx, &domain.ActivityLogEntry{
			TicketID:        ticketID,
			Type:            domain.ActivityCommentAdded,
			PerformedBy:     &actor.ID,
			PerformedByName: actor.Name,
		})
	}
	publishWithDefaults(ctx, s.dispatcher, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticketID,
		ActorID:  &actor.ID,
		Payload: events.TicketCommentAddedPayload{
			CommentID:  comment.ID,
			IsInternal: isInternal,
			Preview:    preview(body, 120),
		},
	})
	return comment, nil
}

// Update edits a comment's body. Only the author or an admin may edit.
func (s *CommentService) Update(ctx context.Context, actor *domain.User, commentID, body string) (*domain.Comment, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("comment body required", nil)
	}

	comment, err := s.getOwned(ctx, actor, commentID)
	if err != nil {
		return nil, err
	}
	updated, err := s.comments.Update(ctx, comment.ID, body)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return updated, nil
}

// Delete removes a comment. Only the author or an admin may delete.
func (s *CommentService) Delete(ctx context.Context, actor *domain.User, commentID string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	comment, err := s.getOwned(ctx, actor, commentID)
	if err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// List returns a ticket's comments, hiding internal ones from non-staff.
func (s *CommentService) List(ctx context.Context, actor *domain.User, ticketID string) ([]domain.Comment, error) {
	comments, err := s.comments.ListByTicket(ctx, ticketID, actor.IsStaff())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

func (s *CommentService) getOwned(ctx context.Context, actor *domain.User, commentID string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("comment", map[string]any{"comment_id": commentID})
		}
		return nil, apperrors.MapError(err)
	}
	if comment.AuthorID != actor.ID && actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("not the comment author")
	}
	return comment, nil
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
