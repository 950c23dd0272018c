package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plandesk/admin-api/internal/domain"
)

// TransferRepository stores ticket transfer requests.
type TransferRepository interface {
	Create(ctx context.Context, req *domain.TransferRequest) error
	GetByID(ctx context.Context, id string) (*domain.TransferRequest, error)
	GetPendingByTicket(ctx context.Context, ticketID string) (*domain.TransferRequest, error)
	// Resolve moves a pending request into a terminal status. It reports
	// pgx.ErrNoRows when the request is no longer pending.
	Resolve(ctx context.Context, id string, status domain.TransferStatus, actionedBy string, actionReason *string) (*domain.TransferRequest, error)
}

type transferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository builds repository.
func NewTransferRepository(pool *pgxpool.Pool) TransferRepository {
	return &transferRepository{pool: pool}
}

const transferColumns = `id, ticket_id, status, requested_by, to_agent, reason,
       requested_at, action_reason, actioned_by, actioned_at`

func (r *transferRepository) Create(ctx context.Context, req *domain.TransferRequest) error {
	const query = `
        INSERT INTO transfer_requests (ticket_id, status, requested_by, to_agent, reason)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, requested_at`
	return r.pool.QueryRow(ctx, query,
		req.TicketID,
		req.Status,
		req.RequestedBy,
		req.ToAgent,
		req.Reason,
	).Scan(&req.ID, &req.RequestedAt)
}

func (r *transferRepository) GetByID(ctx context.Context, id string) (*domain.TransferRequest, error) {
	return r.fetchSingle(ctx, `SELECT `+transferColumns+` FROM transfer_requests WHERE id=$1`, id)
}

func (r *transferRepository) GetPendingByTicket(ctx context.Context, ticketID string) (*domain.TransferRequest, error) {
	return r.fetchSingle(ctx,
		`SELECT `+transferColumns+` FROM transfer_requests WHERE ticket_id=$1 AND status='PENDING'`, ticketID)
}

func (r *transferRepository) Resolve(ctx context.Context, id string, status domain.TransferStatus, actionedBy string, actionReason *string) (*domain.TransferRequest, error) {
	const query = `
        UPDATE transfer_requests
        SET status=$2, actioned_by=$3, action_reason=$4, actioned_at=NOW()
        WHERE id=$1 AND status='PENDING'
        RETURNING ` + transferColumns
	return r.scanRow(r.pool.QueryRow(ctx, query, id, status, actionedBy, actionReason))
}

func (r *transferRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.TransferRequest, error) {
	return r.scanRow(r.pool.QueryRow(ctx, query, arg))
}

func (r *transferRepository) scanRow(row pgx.Row) (*domain.TransferRequest, error) {
	var req domain.TransferRequest
	var actionedAt *time.Time
	if err := row.Scan(
		&req.ID,
		&req.TicketID,
		&req.Status,
		&req.RequestedBy,
		&req.ToAgent,
		&req.Reason,
		&req.RequestedAt,
		&req.ActionReason,
		&req.ActionedBy,
		&actionedAt,
	); err != nil {
		return nil, err
	}
	req.ActionedAt = actionedAt
	return &req, nil
}
