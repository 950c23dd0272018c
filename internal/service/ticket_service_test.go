package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/plandesk/admin-api/internal/domain"
)

type fakeCategoryRepo struct {
	createFn    func(ctx context.Context, category *domain.Category) error
	updateFn    func(ctx context.Context, category *domain.Category) error
	getByIDFn   func(ctx context.Context, id string) (*domain.Category, error)
	getByNameFn func(ctx context.Context, name string) (*domain.Category, error)
	listFn      func(ctx context.Context) ([]domain.Category, error)
	deleteFn    func(ctx context.Context, id string) error
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	return f.createFn(ctx, category)
}

func (f *fakeCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	return f.updateFn(ctx, category)
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return f.getByNameFn(ctx, name)
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	return f.listFn(ctx)
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func noPendingTransfers() *fakeTransferRepo {
	return &fakeTransferRepo{
		getPendingByTicketFn: func(ctx context.Context, ticketID string) (*domain.TransferRequest, error) {
			return nil, pgx.ErrNoRows
		},
	}
}

func TestTicketUpdateStatusRecordsTransition(t *testing.T) {
	ticket := &domain.SupportTicket{ID: "t-1", Status: domain.TicketStatusOpen}
	activity := &fakeActivityRepo{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: &fakeTicketRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.SupportTicket, error) { return ticket, nil },
			updateFn:  func(ctx context.Context, t *domain.SupportTicket) error { return nil },
		},
		TransferRepo: noPendingTransfers(),
		ActivityRepo: activity,
	})

	updated, err := svc.UpdateStatus(context.Background(), agentDana, "t-1", domain.TicketStatusInProgress)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.TicketStatusInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", updated.Status)
	}
	entry := activity.lastEntry(t)
	if entry.Type != domain.ActivityStatusChanged {
		t.Fatalf("activity type = %s, want STATUS_CHANGED", entry.Type)
	}
	if entry.OldStatus == nil || *entry.OldStatus != domain.TicketStatusOpen {
		t.Errorf("old status = %v, want OPEN", entry.OldStatus)
	}
	if entry.NewStatus == nil || *entry.NewStatus != domain.TicketStatusInProgress {
		t.Errorf("new status = %v, want IN_PROGRESS", entry.NewStatus)
	}
	if entry.PerformedByName != "Dana" {
		t.Errorf("performed by = %q, want Dana", entry.PerformedByName)
	}
}

func TestTicketUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewTicketService(TicketDependencies{})
	_, err := svc.UpdateStatus(context.Background(), agentDana, "t-1", domain.TicketStatus("ARCHIVED"))
	wantCode(t, err, "VALIDATION_FAILED")
}

func TestTicketUpdateStatusNoopWhenUnchanged(t *testing.T) {
	ticket := &domain.SupportTicket{ID: "t-1", Status: domain.TicketStatusOpen}
	activity := &fakeActivityRepo{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: &fakeTicketRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.SupportTicket, error) { return ticket, nil },
			updateFn: func(ctx context.Context, t2 *domain.SupportTicket) error {
				t.Fatal("Update must not be called for an unchanged status")
				return nil
			},
		},
		TransferRepo: noPendingTransfers(),
		ActivityRepo: activity,
	})

	if _, err := svc.UpdateStatus(context.Background(), agentDana, "t-1", domain.TicketStatusOpen); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if len(activity.entries) != 0 {
		t.Errorf("recorded %d activity entries, want none", len(activity.entries))
	}
}

func TestTicketAssignTransitions(t *testing.T) {
	tests := []struct {
		name         string
		initial      *string
		target       *string
		wantType     domain.ActivityType
		wantAssigned string
		wantPrevious string
	}{
		{"assign to unassigned", nil, &agentDana.ID, domain.ActivityAssigned, "Dana", ""},
		{"reassign", &agentDana.ID, &agentRiley.ID, domain.ActivityReassigned, "Riley", "Dana"},
		{"unassign", &agentDana.ID, nil, domain.ActivityUnassigned, "", "Dana"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := &domain.SupportTicket{ID: "t-1", AssignedTo: tt.initial}
			activity := &fakeActivityRepo{}
			svc := NewTicketService(TicketDependencies{
				TicketRepo: &fakeTicketRepo{
					getByIDFn: func(ctx context.Context, id string) (*domain.SupportTicket, error) { return ticket, nil },
					updateFn:  func(ctx context.Context, t *domain.SupportTicket) error { return nil },
				},
				TransferRepo: noPendingTransfers(),
				UserRepo:     &fakeUserRepo{getByIDFn: usersByID(agentDana, agentRiley, adminAvery)},
				ActivityRepo: activity,
			})

			updated, err := svc.Assign(context.Background(), adminAvery, "t-1", tt.target)
			if err != nil {
				t.Fatalf("Assign: %v", err)
			}
			if !equalPtr(updated.AssignedTo, tt.target) {
				t.Errorf("assignee = %v, want %v", updated.AssignedTo, tt.target)
			}
			entry := activity.lastEntry(t)
			if entry.Type != tt.wantType {
				t.Errorf("activity type = %s, want %s", entry.Type, tt.wantType)
			}
			if entry.Metadata.AssignedToName != tt.wantAssigned {
				t.Errorf("assigned name = %q, want %q", entry.Metadata.AssignedToName, tt.wantAssigned)
			}
			if entry.Metadata.PreviousAgentName != tt.wantPrevious {
				t.Errorf("previous name = %q, want %q", entry.Metadata.PreviousAgentName, tt.wantPrevious)
			}
		})
	}
}

func TestTicketAssignRejectsNonStaff(t *testing.T) {
	endUser := &domain.User{ID: "u-cust", Name: "Customer", Role: domain.RoleEndUser, Active: true}
	ticket := &domain.SupportTicket{ID: "t-1"}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: &fakeTicketRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.SupportTicket, error) { return ticket, nil },
		},
		TransferRepo: noPendingTransfers(),
		UserRepo:     &fakeUserRepo{getByIDFn: usersByID(endUser)},
	})

	_, err := svc.Assign(context.Background(), adminAvery, "t-1", &endUser.ID)
	wantCode(t, err, "VALIDATION_FAILED")
}

func TestTicketUpdateCategoryRecordsNames(t *testing.T) {
	billingID := "c-billing"
	techID := "c-tech"
	categories := map[string]*domain.Category{
		billingID: {ID: billingID, Name: "Billing"},
		techID:    {ID: techID, Name: "Technical"},
	}
	ticket := &domain.SupportTicket{ID: "t-1", CategoryID: &billingID}
	activity := &fakeActivityRepo{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: &fakeTicketRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.SupportTicket, error) { return ticket, nil },
			updateFn:  func(ctx context.Context, t *domain.SupportTicket) error { return nil },
		},
		TransferRepo: noPendingTransfers(),
		CategoryRepo: &fakeCategoryRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Category, error) {
				if c, ok := categories[id]; ok {
					return c, nil
				}
				return nil, pgx.ErrNoRows
			},
		},
		ActivityRepo: activity,
	})

	updated, err := svc.UpdateCategory(context.Background(), agentDana, "t-1", &techID)
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if updated.CategoryID == nil || *updated.CategoryID != techID {
		t.Errorf("category = %v, want %s", updated.CategoryID, techID)
	}
	entry := activity.lastEntry(t)
	if entry.Type != domain.ActivityCategoryChanged {
		t.Fatalf("activity type = %s, want CATEGORY_CHANGED", entry.Type)
	}
	if entry.OldCategory == nil || *entry.OldCategory != "Billing" {
		t.Errorf("old category = %v, want Billing", entry.OldCategory)
	}
	if entry.NewCategory == nil || *entry.NewCategory != "Technical" {
		t.Errorf("new category = %v, want Technical", entry.NewCategory)
	}
}

func TestTicketCreateAndAssignCategoryCreatesOnMiss(t *testing.T) {
	ticket := &domain.SupportTicket{ID: "t-1"}
	var createdCategory *domain.Category
	categoryRepo := &fakeCategoryRepo{
		getByNameFn: func(ctx context.Context, name string) (*domain.Category, error) {
			return nil, pgx.ErrNoRows
		},
		createFn: func(ctx context.Context, category *domain.Category) error {
			category.ID = "c-new"
			createdCategory = category
			return nil
		},
		getByIDFn: func(ctx context.Context, id string) (*domain.Category, error) {
			if createdCategory != nil && id == createdCategory.ID {
				return createdCategory, nil
			}
			return nil, pgx.ErrNoRows
		},
	}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: &fakeTicketRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.SupportTicket, error) { return ticket, nil },
			updateFn:  func(ctx context.Context, t *domain.SupportTicket) error { return nil },
		},
		TransferRepo: noPendingTransfers(),
		CategoryRepo: categoryRepo,
	})

	updated, category, err := svc.CreateAndAssignCategory(context.Background(), agentDana, "t-1", "  Onboarding ")
	if err != nil {
		t.Fatalf("CreateAndAssignCategory: %v", err)
	}
	if createdCategory == nil {
		t.Fatal("category was not created")
	}
	if category.Name != "Onboarding" {
		t.Errorf("category name = %q, want trimmed name", category.Name)
	}
	if category.Color != domain.DefaultCategoryColor {
		t.Errorf("category color = %q, want default %q", category.Color, domain.DefaultCategoryColor)
	}
	if updated.CategoryID == nil || *updated.CategoryID != "c-new" {
		t.Errorf("ticket category = %v, want c-new", updated.CategoryID)
	}
}

func TestTicketCreateAndAssignCategoryReusesExisting(t *testing.T) {
	existing := &domain.Category{ID: "c-1", Name: "Billing"}
	ticket := &domain.SupportTicket{ID: "t-1"}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: &fakeTicketRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.SupportTicket, error) { return ticket, nil },
			updateFn:  func(ctx context.Context, t *domain.SupportTicket) error { return nil },
		},
		TransferRepo: noPendingTransfers(),
		CategoryRepo: &fakeCategoryRepo{
			getByNameFn: func(ctx context.Context, name string) (*domain.Category, error) { return existing, nil },
			getByIDFn:   func(ctx context.Context, id string) (*domain.Category, error) { return existing, nil },
			createFn: func(ctx context.Context, category *domain.Category) error {
				t.Fatal("Create must not be called when the category exists")
				return nil
			},
		},
	})

	_, category, err := svc.CreateAndAssignCategory(context.Background(), agentDana, "t-1", "Billing")
	if err != nil {
		t.Fatalf("CreateAndAssignCategory: %v", err)
	}
	if category.ID != "c-1" {
		t.Errorf("category = %s, want the existing c-1", category.ID)
	}
}

func TestTicketGetAttachesPendingTransfer(t *testing.T) {
	pending := &domain.TransferRequest{ID: "tr-1", TicketID: "t-1", Status: domain.TransferStatusPending}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: &fakeTicketRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.SupportTicket, error) {
				return &domain.SupportTicket{ID: id}, nil
			},
		},
		TransferRepo: &fakeTransferRepo{
			getPendingByTicketFn: func(ctx context.Context, ticketID string) (*domain.TransferRequest, error) {
				return pending, nil
			},
		},
	})

	ticket, err := svc.Get(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ticket.HasPendingTransfer() {
		t.Fatal("pending transfer was not attached")
	}
	if ticket.TransferRequest.ID != "tr-1" {
		t.Errorf("transfer = %s, want tr-1", ticket.TransferRequest.ID)
	}
}

func TestTicketRemoveAttachment(t *testing.T) {
	ticket := &domain.SupportTicket{ID: "t-1", Attachments: []string{"a.pdf", "b.png"}}
	removed := false
	activity := &fakeActivityRepo{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: &fakeTicketRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.SupportTicket, error) { return ticket, nil },
			removeAttachmentFn: func(ctx context.Context, ticketID, fileName string) error {
				if fileName != "a.pdf" {
					t.Errorf("removing %q, want a.pdf", fileName)
				}
				removed = true
				return nil
			},
		},
		TransferRepo: noPendingTransfers(),
		ActivityRepo: activity,
	})

	if _, err := svc.RemoveAttachment(context.Background(), agentDana, "t-1", "a.pdf"); err != nil {
		t.Fatalf("RemoveAttachment: %v", err)
	}
	if !removed {
		t.Fatal("attachment was not removed")
	}
	if entry := activity.lastEntry(t); entry.Type != domain.ActivityUpdated {
		t.Errorf("activity type = %s, want UPDATED", entry.Type)
	}

	_, err := svc.RemoveAttachment(context.Background(), agentDana, "t-1", "missing.txt")
	wantCode(t, err, "NOT_FOUND")
}
