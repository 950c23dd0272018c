package dto

import (
	"time"

	"github.com/plandesk/admin-api/internal/domain"
	"github.com/plandesk/admin-api/internal/service"
)

// ActivityEntryResponse projects one audit entry with its display rendering.
type ActivityEntryResponse struct {
	ID              string                  `json:"id"`
	TicketID        string                  `json:"ticketId"`
	ActivityType    domain.ActivityType     `json:"activityType"`
	PerformedBy     *string                 `json:"performedBy"`
	PerformedByName string                  `json:"performedByName,omitempty"`
	OldStatus       *domain.TicketStatus    `json:"oldStatus,omitempty"`
	NewStatus       *domain.TicketStatus    `json:"newStatus,omitempty"`
	OldCategory     *string                 `json:"oldCategory,omitempty"`
	NewCategory     *string                 `json:"newCategory,omitempty"`
	Metadata        domain.ActivityMetadata `json:"metadata"`
	Message         string                  `json:"message"`
	Icon            string                  `json:"icon"`
	Color           string                  `json:"color"`
	CreatedAt       time.Time               `json:"createdAt"`
}

// ActivityPageResponse wraps one page of the activity log. PageNumbers uses
// -1 as the ellipsis marker.
type ActivityPageResponse struct {
	Items       []ActivityEntryResponse `json:"items"`
	Page        int                     `json:"page"`
	Limit       int                     `json:"limit"`
	Total       int                     `json:"total"`
	TotalPages  int                     `json:"totalPages"`
	PageNumbers []int                   `json:"pageNumbers"`
}

// NewActivityPageResponse maps a service activity page.
func NewActivityPageResponse(page *service.ActivityPage) ActivityPageResponse {
	items := make([]ActivityEntryResponse, 0, len(page.Entries))
	for _, entry := range page.Entries {
		items = append(items, ActivityEntryResponse{
			ID:              entry.Entry.ID,
			TicketID:        entry.Entry.TicketID,
			ActivityType:    entry.Entry.Type,
			PerformedBy:     entry.Entry.PerformedBy,
			PerformedByName: entry.Entry.PerformedByName,
			OldStatus:       entry.Entry.OldStatus,
			NewStatus:       entry.Entry.NewStatus,
			OldCategory:     entry.Entry.OldCategory,
			NewCategory:     entry.Entry.NewCategory,
			Metadata:        entry.Entry.Metadata,
			Message:         entry.Rendering.Message,
			Icon:            entry.Rendering.Icon,
			Color:           entry.Rendering.Color,
			CreatedAt:       entry.Entry.CreatedAt,
		})
	}
	return ActivityPageResponse{
		Items:       items,
		Page:        page.Page,
		Limit:       page.Limit,
		Total:       page.Total,
		TotalPages:  page.TotalPages,
		PageNumbers: page.PageNumbers,
	}
}
