package activity

import (
	"testing"

	"github.com/plandesk/admin-api/internal/domain"
)

func strPtr(s string) *string { return &s }

func statusPtr(s domain.TicketStatus) *domain.TicketStatus { return &s }

func TestFormat(t *testing.T) {
	tests := []struct {
		name        string
		entry       domain.ActivityLogEntry
		wantMessage string
		wantIcon    string
		wantColor   string
	}{
		{
			name: "created",
			entry: domain.ActivityLogEntry{
				Type:            domain.ActivityCreated,
				PerformedByName: "Dana",
			},
			wantMessage: "Dana created the ticket",
			wantIcon:    "plus-circle",
			wantColor:   "green",
		},
		{
			name: "status change",
			entry: domain.ActivityLogEntry{
				Type:            domain.ActivityStatusChanged,
				PerformedByName: "Dana",
				OldStatus:       statusPtr(domain.TicketStatusOpen),
				NewStatus:       statusPtr(domain.TicketStatusInProgress),
			},
			wantMessage: "Dana changed status from open to in progress",
			wantIcon:    "refresh",
			wantColor:   "blue",
		},
		{
			name: "status change with missing endpoints",
			entry: domain.ActivityLogEntry{
				Type:            domain.ActivityStatusChanged,
				PerformedByName: "Dana",
			},
			wantMessage: "Dana changed status from unknown to unknown",
			wantIcon:    "refresh",
			wantColor:   "blue",
		},
		{
			name: "system actor",
			entry: domain.ActivityLogEntry{
				Type: domain.ActivityCommentAdded,
			},
			wantMessage: "System added a comment",
			wantIcon:    "chat",
			wantColor:   "sky",
		},
		{
			name: "assigned",
			entry: domain.ActivityLogEntry{
				Type:            domain.ActivityAssigned,
				PerformedByName: "Dana",
				Metadata:        domain.ActivityMetadata{AssignedToName: "Riley"},
			},
			wantMessage: "Dana assigned the ticket to Riley",
			wantIcon:    "user-plus",
			wantColor:   "indigo",
		},
		{
			name: "reassigned",
			entry: domain.ActivityLogEntry{
				Type:            domain.ActivityReassigned,
				PerformedByName: "Dana",
				Metadata:        domain.ActivityMetadata{PreviousAgentName: "Riley", AssignedToName: "Sam"},
			},
			wantMessage: "Dana reassigned the ticket from Riley to Sam",
			wantIcon:    "switch-horizontal",
			wantColor:   "indigo",
		},
		{
			name: "unassigned with unknown previous agent",
			entry: domain.ActivityLogEntry{
				Type:            domain.ActivityUnassigned,
				PerformedByName: "Dana",
			},
			wantMessage: "Dana unassigned the ticket from unknown",
			wantIcon:    "user-minus",
			wantColor:   "gray",
		},
		{
			name: "category change to none",
			entry: domain.ActivityLogEntry{
				Type:            domain.ActivityCategoryChanged,
				PerformedByName: "Dana",
				OldCategory:     strPtr("Billing"),
			},
			wantMessage: "Dana changed category from Billing to none",
			wantIcon:    "tag",
			wantColor:   "purple",
		},
		{
			name: "transfer requested",
			entry: domain.ActivityLogEntry{
				Type:            domain.ActivityTransferRequested,
				PerformedByName: "Dana",
				Metadata:        domain.ActivityMetadata{ToAgentName: "Riley", Reason: "customer escalation"},
			},
			wantMessage: "Dana requested a transfer to Riley: customer escalation",
			wantIcon:    "arrow-right-circle",
			wantColor:   "amber",
		},
		{
			name: "transfer rejected",
			entry: domain.ActivityLogEntry{
				Type:            domain.ActivityTransferRejected,
				PerformedByName: "Avery",
			},
			wantMessage: "Avery rejected the transfer request",
			wantIcon:    "x-circle",
			wantColor:   "red",
		},
		{
			name: "updated with details",
			entry: domain.ActivityLogEntry{
				Type:            domain.ActivityUpdated,
				PerformedByName: "Dana",
				Metadata:        domain.ActivityMetadata{Details: "subject edited"},
			},
			wantMessage: "Dana updated the ticket: subject edited",
			wantIcon:    "pencil",
			wantColor:   "gray",
		},
		{
			name: "unknown type falls back",
			entry: domain.ActivityLogEntry{
				Type:            domain.ActivityType("PRIORITY_ESCALATED"),
				PerformedByName: "Dana",
			},
			wantMessage: "Dana performed priority escalated",
			wantIcon:    "information-circle",
			wantColor:   "gray",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.entry)
			if got.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", got.Message, tt.wantMessage)
			}
			if got.Icon != tt.wantIcon {
				t.Errorf("icon = %q, want %q", got.Icon, tt.wantIcon)
			}
			if got.Color != tt.wantColor {
				t.Errorf("color = %q, want %q", got.Color, tt.wantColor)
			}
		})
	}
}
