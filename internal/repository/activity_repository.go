package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plandesk/admin-api/internal/domain"
)

// ActivityRepository stores append-only audit entries.
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLogEntry) error
	ListByTicket(ctx context.Context, ticketID string, types []domain.ActivityType, limit, offset int) ([]domain.ActivityLogEntry, error)
	CountByTicket(ctx context.Context, ticketID string, types []domain.ActivityType) (int, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository builds repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, entry *domain.ActivityLogEntry) error {
	const query = `
        INSERT INTO ticket_activity (ticket_id, activity_type, performed_by, performed_by_name, old_status, new_status, old_category, new_category, metadata)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.Type,
		entry.PerformedBy,
		entry.PerformedByName,
		entry.OldStatus,
		entry.NewStatus,
		entry.OldCategory,
		entry.NewCategory,
		entry.Metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func typeClause(types []domain.ActivityType, args *[]any) string {
	if len(types) == 0 {
		return "1=1"
	}
	placeholders := make([]string, len(types))
	for i, t := range types {
		*args = append(*args, t)
		placeholders[i] = fmt.Sprintf("$%d", len(*args))
	}
	return fmt.Sprintf("activity_type IN (%s)", strings.Join(placeholders, ","))
}

func (r *activityRepository) ListByTicket(ctx context.Context, ticketID string, types []domain.ActivityType, limit, offset int) ([]domain.ActivityLogEntry, error) {
	args := []any{ticketID}
	clause := typeClause(types, &args)

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT id, ticket_id, activity_type, performed_by, performed_by_name,
               old_status, new_status, old_category, new_category, metadata, created_at
        FROM ticket_activity
        WHERE ticket_id=$1 AND %s
        ORDER BY created_at DESC
        LIMIT %d OFFSET %d`, clause, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ActivityLogEntry
	for rows.Next() {
		var entry domain.ActivityLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.Type,
			&entry.PerformedBy,
			&entry.PerformedByName,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.OldCategory,
			&entry.NewCategory,
			&entry.Metadata,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *activityRepository) CountByTicket(ctx context.Context, ticketID string, types []domain.ActivityType) (int, error) {
	args := []any{ticketID}
	clause := typeClause(types, &args)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM ticket_activity WHERE ticket_id=$1 AND %s`, clause)
	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
