package service

import (
	"context"
	"testing"

	"github.com/plandesk/admin-api/internal/activity"
	"github.com/plandesk/admin-api/internal/domain"
)

func TestActivityListClampsStalePage(t *testing.T) {
	var gotOffset int
	repo := &fakeActivityRepo{
		countByTicketFn: func(ctx context.Context, ticketID string, types []domain.ActivityType) (int, error) {
			return 12, nil
		},
		listByTicketFn: func(ctx context.Context, ticketID string, types []domain.ActivityType, limit, offset int) ([]domain.ActivityLogEntry, error) {
			gotOffset = offset
			return []domain.ActivityLogEntry{{ID: "a-1", TicketID: ticketID, Type: domain.ActivityCreated}}, nil
		},
	}
	svc := NewActivityService(repo)

	// 12 entries at 10 per page means page 7 is stale; it clamps to page 2.
	page, err := svc.List(context.Background(), "t-1", 7, 10, activity.FilterAll)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Page != 2 {
		t.Errorf("page = %d, want 2", page.Page)
	}
	if page.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2", page.TotalPages)
	}
	if gotOffset != 10 {
		t.Errorf("offset = %d, want 10", gotOffset)
	}
}

func TestActivityListNormalizesLimitAndFilters(t *testing.T) {
	var gotTypes []domain.ActivityType
	var gotLimit int
	repo := &fakeActivityRepo{
		countByTicketFn: func(ctx context.Context, ticketID string, types []domain.ActivityType) (int, error) {
			gotTypes = types
			return 3, nil
		},
		listByTicketFn: func(ctx context.Context, ticketID string, types []domain.ActivityType, limit, offset int) ([]domain.ActivityLogEntry, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := NewActivityService(repo)

	page, err := svc.List(context.Background(), "t-1", 1, 17, activity.FilterTransfer)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Limit != activity.DefaultLimit || gotLimit != activity.DefaultLimit {
		t.Errorf("limit = %d/%d, want normalized %d", page.Limit, gotLimit, activity.DefaultLimit)
	}
	if len(gotTypes) != 4 {
		t.Fatalf("transfer filter expanded to %d types, want 4", len(gotTypes))
	}
}

func TestActivityListAttachesRenderings(t *testing.T) {
	repo := &fakeActivityRepo{
		countByTicketFn: func(ctx context.Context, ticketID string, types []domain.ActivityType) (int, error) {
			return 1, nil
		},
		listByTicketFn: func(ctx context.Context, ticketID string, types []domain.ActivityType, limit, offset int) ([]domain.ActivityLogEntry, error) {
			return []domain.ActivityLogEntry{{
				ID:              "a-1",
				TicketID:        ticketID,
				Type:            domain.ActivityCommentAdded,
				PerformedByName: "Dana",
			}}, nil
		},
	}
	svc := NewActivityService(repo)

	page, err := svc.List(context.Background(), "t-1", 1, 10, activity.FilterAll)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(page.Entries))
	}
	if page.Entries[0].Rendering.Message != "Dana added a comment" {
		t.Errorf("rendered message = %q", page.Entries[0].Rendering.Message)
	}
	want := []int{1}
	if len(page.PageNumbers) != 1 || page.PageNumbers[0] != want[0] {
		t.Errorf("page numbers = %v, want %v", page.PageNumbers, want)
	}
}
