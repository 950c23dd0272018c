package service

import (
	"context"

	"github.com/plandesk/admin-api/internal/activity"
	"github.com/plandesk/admin-api/internal/domain"
	"github.com/plandesk/admin-api/internal/repository"
	apperrors "github.com/plandesk/admin-api/pkg/util"
)

// ActivityService serves the paginated, filterable activity log for a ticket.
type ActivityService struct {
	activities repository.ActivityRepository
}

// NewActivityService constructs the service.
func NewActivityService(activities repository.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

// ActivityEntry pairs a stored entry with its display rendering.
type ActivityEntry struct {
	Entry     domain.ActivityLogEntry
	Rendering activity.Rendering
}

// ActivityPage is one page of a ticket's activity log.
type ActivityPage struct {
	Entries     []ActivityEntry
	Page        int
	Limit       int
	Total       int
	TotalPages  int
	PageNumbers []int
}

// List returns a page of activity entries. The limit is coerced to an offered
// page size and the page is clamped to the filtered total, so a stale page
// request after a filter change still resolves to a valid page.
func (s *ActivityService) List(ctx context.Context, ticketID string, page, limit int, filter activity.FilterType) (*ActivityPage, error) {
	limit = activity.NormalizeLimit(limit)
	types := activity.TypesFor(filter)

	total, err := s.activities.CountByTicket(ctx, ticketID, types)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	totalPages := activity.TotalPages(total, limit)
	page = activity.ClampPage(page, totalPages)

	entries, err := s.activities.ListByTicket(ctx, ticketID, types, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := make([]ActivityEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, ActivityEntry{Entry: entry, Rendering: activity.Format(entry)})
	}

	return &ActivityPage{
		Entries:     result,
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		PageNumbers: activity.PageWindow(page, totalPages),
	}, nil
}
