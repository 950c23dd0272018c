package activity

import (
	"fmt"
	"strings"

	"github.com/plandesk/admin-api/internal/domain"
)

// Rendering is the display projection of a single activity entry.
type Rendering struct {
	Message string
	Icon    string
	Color   string
}

// Format maps an activity entry to its human-readable message, icon and
// color. Unknown activity types degrade to a generic message so new backend
// activity kinds never break rendering.
func Format(entry domain.ActivityLogEntry) Rendering {
	actor := entry.PerformedByName
	if actor == "" {
		actor = "System"
	}

	switch entry.Type {
	case domain.ActivityCreated:
		return Rendering{
			Message: fmt.Sprintf("%s created the ticket", actor),
			Icon:    "plus-circle",
			Color:   "green",
		}
	case domain.ActivityStatusChanged:
		return Rendering{
			Message: fmt.Sprintf("%s changed status from %s to %s",
				actor, statusLabel(entry.OldStatus), statusLabel(entry.NewStatus)),
			Icon:  "refresh",
			Color: "blue",
		}
	case domain.ActivityAssigned:
		return Rendering{
			Message: fmt.Sprintf("%s assigned the ticket to %s", actor, nameOrUnknown(entry.Metadata.AssignedToName)),
			Icon:    "user-plus",
			Color:   "indigo",
		}
	case domain.ActivityReassigned:
		return Rendering{
			Message: fmt.Sprintf("%s reassigned the ticket from %s to %s",
				actor, nameOrUnknown(entry.Metadata.PreviousAgentName), nameOrUnknown(entry.Metadata.AssignedToName)),
			Icon:  "switch-horizontal",
			Color: "indigo",
		}
	case domain.ActivityUnassigned:
		return Rendering{
			Message: fmt.Sprintf("%s unassigned the ticket from %s", actor, nameOrUnknown(entry.Metadata.PreviousAgentName)),
			Icon:    "user-minus",
			Color:   "gray",
		}
	case domain.ActivityCategoryChanged:
		return Rendering{
			Message: fmt.Sprintf("%s changed category from %s to %s",
				actor, categoryLabel(entry.OldCategory), categoryLabel(entry.NewCategory)),
			Icon:  "tag",
			Color: "purple",
		}
	case domain.ActivityCommentAdded:
		return Rendering{
			Message: fmt.Sprintf("%s added a comment", actor),
			Icon:    "chat",
			Color:   "sky",
		}
	case domain.ActivityUpdated:
		message := fmt.Sprintf("%s updated the ticket", actor)
		if entry.Metadata.Details != "" {
			message = fmt.Sprintf("%s updated the ticket: %s", actor, entry.Metadata.Details)
		}
		return Rendering{Message: message, Icon: "pencil", Color: "gray"}
	case domain.ActivityTransferRequested:
		return Rendering{
			Message: fmt.Sprintf("%s requested a transfer to %s: %s",
				actor, nameOrUnknown(entry.Metadata.ToAgentName), entry.Metadata.Reason),
			Icon:  "arrow-right-circle",
			Color: "amber",
		}
	case domain.ActivityTransferApproved:
		return Rendering{
			Message: fmt.Sprintf("%s approved the transfer request", actor),
			Icon:    "check-circle",
			Color:   "green",
		}
	case domain.ActivityTransferRejected:
		return Rendering{
			Message: fmt.Sprintf("%s rejected the transfer request", actor),
			Icon:    "x-circle",
			Color:   "red",
		}
	case domain.ActivityTransferCancelled:
		return Rendering{
			Message: fmt.Sprintf("%s cancelled the transfer request", actor),
			Icon:    "ban",
			Color:   "gray",
		}
	}

	// Fallback for activity kinds this build does not know about.
	return Rendering{
		Message: fmt.Sprintf("%s performed %s", actor, humanizeType(entry.Type)),
		Icon:    "information-circle",
		Color:   "gray",
	}
}

func humanizeType(t domain.ActivityType) string {
	return strings.ToLower(strings.ReplaceAll(string(t), "_", " "))
}

func statusLabel(s *domain.TicketStatus) string {
	if s == nil {
		return "unknown"
	}
	return strings.ToLower(strings.ReplaceAll(string(*s), "_", " "))
}

func categoryLabel(name *string) string {
	if name == nil || *name == "" {
		return "none"
	}
	return *name
}

func nameOrUnknown(name string) string {
	if name == "" {
		return "unknown"
	}
	return name
}
