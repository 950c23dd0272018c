package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/plandesk/admin-api/internal/domain"
	"github.com/plandesk/admin-api/internal/events"
	"github.com/plandesk/admin-api/internal/repository"
	apperrors "github.com/plandesk/admin-api/pkg/util"
)

// TicketService coordinates support ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	transfers  repository.TransferRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	activity   repository.ActivityRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	TransferRepo repository.TransferRepository
	CategoryRepo repository.CategoryRepository
	UserRepo     repository.UserRepository
	ActivityRepo repository.ActivityRepository
	Dispatcher   events.Dispatcher
}

// TicketListInput describes ticket listing filters.
type TicketListInput struct {
	Search             string
	Status             *domain.TicketStatus
	AssignedTo         *string
	CategoryID         *string
	StartDate          *time.Time
	EndDate            *time.Time
	HasPendingTransfer *bool
	Page               int
	Limit              int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		transfers:  deps.TransferRepo,
		categories: deps.CategoryRepo,
		users:      deps.UserRepo,
		activity:   deps.ActivityRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Get fetches a ticket with its pending transfer request, if any.
func (s *TicketService) Get(ctx context.Context, ticketID string) (*domain.SupportTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.attachPendingTransfer(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// List returns a page of tickets matching the filters, with pending transfer
// requests attached, plus the total match count.
func (s *TicketService) List(ctx context.Context, input TicketListInput) ([]domain.SupportTicket, int, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := repository.TicketFilter{
		Status:             input.Status,
		AssignedTo:         input.AssignedTo,
		CategoryID:         input.CategoryID,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		HasPendingTransfer: input.HasPendingTransfer,
		Limit:              limit,
		Offset:             (page - 1) * limit,
	}
	if search := strings.TrimSpace(input.Search); search != "" {
		filter.Search = &search
	}

	tickets, total, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	for i := range tickets {
		if err := s.attachPendingTransfer(ctx, &tickets[i]); err != nil {
			return nil, 0, apperrors.MapError(err)
		}
	}
	return tickets, total, nil
}

// UpdateStatus changes a ticket's status and records the change.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, ticketID string, newStatus domain.TicketStatus) (*domain.SupportTicket, error) {
	if !domain.ValidTicketStatus(newStatus) {
		return nil, apperrors.NewValidationError("invalid ticket status", map[string]any{"status": newStatus})
	}
	ticket, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == newStatus {
		return ticket, nil
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.record(ctx, actor, domain.ActivityLogEntry{
		TicketID:  ticket.ID,
		Type:      domain.ActivityStatusChanged,
		OldStatus: &oldStatus,
		NewStatus: &newStatus,
	})
	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  actorID(actor),
		Payload:  events.TicketStatusChangedPayload{OldStatus: oldStatus, NewStatus: newStatus},
	})
	return ticket, nil
}

// UpdateCategory sets or clears a ticket's category and records the change.
func (s *TicketService) UpdateCategory(ctx context.Context, actor *domain.User, ticketID string, categoryID *string) (*domain.SupportTicket, error) {
	ticket, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	var newName *string
	if categoryID != nil {
		category, err := s.categories.GetByID(ctx, *categoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("category", map[string]any{"category_id": *categoryID})
			}
			return nil, apperrors.MapError(err)
		}
		newName = &category.Name
	}
	oldName := s.categoryName(ctx, ticket.CategoryID)

	ticket.CategoryID = categoryID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.record(ctx, actor, domain.ActivityLogEntry{
		TicketID:    ticket.ID,
		Type:        domain.ActivityCategoryChanged,
		OldCategory: oldName,
		NewCategory: newName,
	})
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCategoryChanged,
		TicketID: ticket.ID,
		ActorID:  actorID(actor),
		Payload:  events.TicketCategoryChangedPayload{NewCategoryID: categoryID},
	})
	return ticket, nil
}

// CreateAndAssignCategory backs the create-on-search-miss flow: it creates a
// category with the given name and default color (reusing an existing category
// with that name) and immediately assigns it to the ticket.
func (s *TicketService) CreateAndAssignCategory(ctx context.Context, actor *domain.User, ticketID, name string) (*domain.SupportTicket, *domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, apperrors.NewValidationError("category name required", nil)
	}

	category, err := s.categories.GetByName(ctx, name)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.MapError(err)
		}
		category = &domain.Category{Name: name, Color: domain.DefaultCategoryColor}
		if err := s.categories.Create(ctx, category); err != nil {
			return nil, nil, apperrors.MapError(err)
		}
	}

	ticket, err := s.UpdateCategory(ctx, actor, ticketID, &category.ID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, category, nil
}

// Assign changes a ticket's assignee. A nil assignee unassigns the ticket.
func (s *TicketService) Assign(ctx context.Context, actor *domain.User, ticketID string, assignedTo *string) (*domain.SupportTicket, error) {
	ticket, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	var assignee *domain.User
	if assignedTo != nil {
		assignee, err = s.users.GetByID(ctx, *assignedTo)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("agent", map[string]any{"user_id": *assignedTo})
			}
			return nil, apperrors.MapError(err)
		}
		if !assignee.IsStaff() || !assignee.Active {
			return nil, apperrors.NewValidationError("assignee must be an active support agent", nil)
		}
	}

	previous := ticket.AssignedTo
	if equalPtr(previous, assignedTo) {
		return ticket, nil
	}

	ticket.AssignedTo = assignedTo
	if assignedTo != nil {
		ticket.AssignedBy = actorID(actor)
	} else {
		ticket.AssignedBy = nil
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	entry := domain.ActivityLogEntry{TicketID: ticket.ID}
	switch {
	case previous == nil && assignedTo != nil:
		entry.Type = domain.ActivityAssigned
		entry.Metadata.AssignedToName = assignee.Name
	case previous != nil && assignedTo != nil:
		entry.Type = domain.ActivityReassigned
		entry.Metadata.AssignedToName = assignee.Name
		entry.Metadata.PreviousAgentName = s.userName(ctx, *previous)
	default:
		entry.Type = domain.ActivityUnassigned
		entry.Metadata.PreviousAgentName = s.userName(ctx, *previous)
	}
	s.record(ctx, actor, entry)
	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  actorID(actor),
		Payload:  events.TicketAssignedPayload{AssignedTo: assignedTo, AssignedBy: ticket.AssignedBy},
	})
	return ticket, nil
}

// Delete removes a ticket after a confirmed admin action.
func (s *TicketService) Delete(ctx context.Context, ticketID string) error {
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// RemoveAttachment deletes a stored attachment reference from a ticket.
func (s *TicketService) RemoveAttachment(ctx context.Context, actor *domain.User, ticketID, fileName string) (*domain.SupportTicket, error) {
	ticket, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, att := range ticket.Attachments {
		if att == fileName {
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.NewNotFound("attachment", map[string]any{"file_name": fileName})
	}
	if err := s.tickets.RemoveAttachment(ctx, ticketID, fileName); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.record(ctx, actor, domain.ActivityLogEntry{
		TicketID: ticket.ID,
		Type:     domain.ActivityUpdated,
		Metadata: domain.ActivityMetadata{Details: "removed attachment " + fileName},
	})
	return s.Get(ctx, ticketID)
}

func (s *TicketService) attachPendingTransfer(ctx context.Context, ticket *domain.SupportTicket) error {
	req, err := s.transfers.GetPendingByTicket(ctx, ticket.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	ticket.TransferRequest = req
	return nil
}

func (s *TicketService) categoryName(ctx context.Context, id *string) *string {
	if id == nil {
		return nil
	}
	category, err := s.categories.GetByID(ctx, *id)
	if err != nil {
		return nil
	}
	return &category.Name
}

func (s *TicketService) userName(ctx context.Context, id string) string {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return ""
	}
	return user.Name
}

func (s *TicketService) record(ctx context.Context, actor *domain.User, entry domain.ActivityLogEntry) {
	if s.activity == nil {
		return
	}
	if actor != nil {
		entry.PerformedBy = &actor.ID
		entry.PerformedByName = actor.Name
	}
	_ = s.activity.Create(ctx, &entry)
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	publishWithDefaults(ctx, s.dispatcher, event)
}

func actorID(actor *domain.User) *string {
	if actor == nil {
		return nil
	}
	return &actor.ID
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
