package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/plandesk/admin-api/internal/domain"
	"github.com/plandesk/admin-api/internal/events"
	"github.com/plandesk/admin-api/internal/repository"
	apperrors "github.com/plandesk/admin-api/pkg/util"
)

// TransferAction is an admin's decision on a pending transfer request.
type TransferAction string

const (
	TransferActionApprove TransferAction = "approve"
	TransferActionReject  TransferAction = "reject"
)

const pgUniqueViolation = "23505"

// TransferService coordinates the ticket transfer workflow: an agent requests
// a handoff, an admin approves or rejects it, or the requester cancels it
// while still pending.
type TransferService struct {
	tickets    repository.TicketRepository
	transfers  repository.TransferRepository
	users      repository.UserRepository
	activity   repository.ActivityRepository
	dispatcher events.Dispatcher
}

// TransferDependencies bundles repositories for the transfer service.
type TransferDependencies struct {
	TicketRepo   repository.TicketRepository
	TransferRepo repository.TransferRepository
	UserRepo     repository.UserRepository
	ActivityRepo repository.ActivityRepository
	Dispatcher   events.Dispatcher
}

// NewTransferService constructs the service.
func NewTransferService(deps TransferDependencies) *TransferService {
	return &TransferService{
		tickets:    deps.TicketRepo,
		transfers:  deps.TransferRepo,
		users:      deps.UserRepo,
		activity:   deps.ActivityRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Request opens a transfer request on a ticket. Only one pending request may
// exist per ticket.
func (s *TransferService) Request(ctx context.Context, actor *domain.User, ticketID, toAgentID, reason string) (*domain.TransferRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reason required", nil)
	}
	if toAgentID == actor.ID {
		return nil, apperrors.NewValidationError("cannot transfer a ticket to yourself", nil)
	}

	toAgent, err := s.users.GetByID(ctx, toAgentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agent", map[string]any{"user_id": toAgentID})
		}
		return nil, apperrors.MapError(err)
	}
	if toAgent.Role != domain.RoleSupportAgent || !toAgent.Active {
		return nil, apperrors.NewValidationError("target must be an active support agent", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	if _, err := s.transfers.GetPendingByTicket(ctx, ticket.ID); err == nil {
		return nil, apperrors.NewConflict("a transfer request is already pending for this ticket", map[string]any{"ticket_id": ticket.ID})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	req := &domain.TransferRequest{
		TicketID:    ticket.ID,
		Status:      domain.TransferStatusPending,
		RequestedBy: actor.ID,
		ToAgent:     toAgent.ID,
		Reason:      reason,
	}
	if err := s.transfers.Create(ctx, req); err != nil {
		// The partial unique index closes the check-then-create race.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperrors.NewConflict("a transfer request is already pending for this ticket", map[string]any{"ticket_id": ticket.ID})
		}
		return nil, apperrors.MapError(err)
	}

	s.record(ctx, actor, domain.ActivityLogEntry{
		TicketID: ticket.ID,
		Type:     domain.ActivityTransferRequested,
		Metadata: domain.ActivityMetadata{ToAgentName: toAgent.Name, Reason: reason},
	})
	s.publish(ctx, actor, events.Event{
		Type:     events.EventTransferRequested,
		TicketID: ticket.ID,
		Payload:  events.TransferRequestedPayload{TransferID: req.ID, ToAgent: toAgent.ID, Reason: reason},
	})
	return req, nil
}

// Manage approves or rejects the pending transfer request on a ticket, with
// an optional admin note. Approval also reassigns the ticket to the target
// agent.
func (s *TransferService) Manage(ctx context.Context, actor *domain.User, ticketID string, action TransferAction, note string) (*domain.TransferRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	var status domain.TransferStatus
	var activityType domain.ActivityType
	switch action {
	case TransferActionApprove:
		status = domain.TransferStatusApproved
		activityType = domain.ActivityTransferApproved
	case TransferActionReject:
		status = domain.TransferStatusRejected
		activityType = domain.ActivityTransferRejected
	default:
		return nil, apperrors.NewValidationError("action must be approve or reject", map[string]any{"action": action})
	}

	pending, err := s.transfers.GetPendingByTicket(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("pending transfer request", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	var actionReason *string
	if note = strings.TrimSpace(note); note != "" {
		actionReason = &note
	}

	resolved, err := s.transfers.Resolve(ctx, pending.ID, status, actor.ID, actionReason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("transfer request is no longer pending", map[string]any{"transfer_id": pending.ID})
		}
		return nil, apperrors.MapError(err)
	}

	if action == TransferActionApprove {
		if err := s.reassignTicket(ctx, actor, resolved); err != nil {
			return nil, err
		}
	}

	s.record(ctx, actor, domain.ActivityLogEntry{
		TicketID: ticketID,
		Type:     activityType,
		Metadata: domain.ActivityMetadata{
			ToAgentName: s.userName(ctx, resolved.ToAgent),
			Reason:      note,
		},
	})
	s.publish(ctx, actor, events.Event{
		Type:     events.EventTransferActioned,
		TicketID: ticketID,
		Payload:  events.TransferActionedPayload{TransferID: resolved.ID, Status: resolved.Status, Reason: note},
	})
	return resolved, nil
}

// Cancel withdraws the requester's own pending transfer request.
func (s *TransferService) Cancel(ctx context.Context, actor *domain.User, ticketID string) (*domain.TransferRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	pending, err := s.transfers.GetPendingByTicket(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("pending transfer request", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if pending.RequestedBy != actor.ID && actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only the requester can cancel a transfer request")
	}

	resolved, err := s.transfers.Resolve(ctx, pending.ID, domain.TransferStatusCancelled, actor.ID, nil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("transfer request is no longer pending", map[string]any{"transfer_id": pending.ID})
		}
		return nil, apperrors.MapError(err)
	}

	s.record(ctx, actor, domain.ActivityLogEntry{
		TicketID: ticketID,
		Type:     domain.ActivityTransferCancelled,
		Metadata: domain.ActivityMetadata{ToAgentName: s.userName(ctx, resolved.ToAgent)},
	})
	s.publish(ctx, actor, events.Event{
		Type:     events.EventTransferCancelled,
		TicketID: ticketID,
		Payload:  events.TransferCancelledPayload{TransferID: resolved.ID},
	})
	return resolved, nil
}

func (s *TransferService) reassignTicket(ctx context.Context, actor *domain.User, req *domain.TransferRequest) error {
	ticket, err := s.tickets.GetByID(ctx, req.TicketID)
	if err != nil {
		return apperrors.MapError(err)
	}
	previous := ticket.AssignedTo
	ticket.AssignedTo = &req.ToAgent
	ticket.AssignedBy = &actor.ID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return apperrors.MapError(err)
	}

	entry := domain.ActivityLogEntry{
		TicketID: ticket.ID,
		Type:     domain.ActivityReassigned,
		Metadata: domain.ActivityMetadata{AssignedToName: s.userName(ctx, req.ToAgent)},
	}
	if previous != nil {
		entry.Metadata.PreviousAgentName = s.userName(ctx, *previous)
	} else {
		entry.Type = domain.ActivityAssigned
	}
	s.record(ctx, actor, entry)
	return nil
}

func (s *TransferService) userName(ctx context.Context, id string) string {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return ""
	}
	return user.Name
}

func (s *TransferService) record(ctx context.Context, actor *domain.User, entry domain.ActivityLogEntry) {
	if s.activity == nil {
		return
	}
	if actor != nil {
		entry.PerformedBy = &actor.ID
		entry.PerformedByName = actor.Name
	}
	_ = s.activity.Create(ctx, &entry)
}

func (s *TransferService) publish(ctx context.Context, actor *domain.User, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ActorID = actorID(actor)
	publishWithDefaults(ctx, s.dispatcher, event)
}
