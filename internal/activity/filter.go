package activity

import "github.com/plandesk/admin-api/internal/domain"

// FilterType groups activity kinds for the log viewer's filter control.
type FilterType string

const (
	FilterAll        FilterType = "all"
	FilterStatus     FilterType = "status"
	FilterAssignment FilterType = "assignment"
	FilterCategory   FilterType = "category"
	FilterTransfer   FilterType = "transfer"
)

// allowedLimits are the page sizes the viewer offers.
var allowedLimits = map[int]struct{}{5: {}, 10: {}, 20: {}, 50: {}}

// DefaultLimit is used when the requested page size is not offered.
const DefaultLimit = 10

// NormalizeLimit coerces a requested page size to an offered one.
func NormalizeLimit(limit int) int {
	if _, ok := allowedLimits[limit]; ok {
		return limit
	}
	return DefaultLimit
}

// TypesFor expands a filter into the activity types it covers. An empty slice
// means no restriction. Unknown filters behave like "all" so stale clients
// keep working.
func TypesFor(filter FilterType) []domain.ActivityType {
	switch filter {
	case FilterStatus:
		return []domain.ActivityType{domain.ActivityCreated, domain.ActivityStatusChanged}
	case FilterAssignment:
		return []domain.ActivityType{domain.ActivityAssigned, domain.ActivityReassigned, domain.ActivityUnassigned}
	case FilterCategory:
		return []domain.ActivityType{domain.ActivityCategoryChanged}
	case FilterTransfer:
		return []domain.ActivityType{
			domain.ActivityTransferRequested,
			domain.ActivityTransferApproved,
			domain.ActivityTransferRejected,
			domain.ActivityTransferCancelled,
		}
	default:
		return nil
	}
}
