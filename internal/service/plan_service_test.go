package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/plandesk/admin-api/internal/domain"
	apperrors "github.com/plandesk/admin-api/pkg/util"
)

type fakePlanRepo struct {
	createFn        func(ctx context.Context, plan *domain.Plan) error
	updateFn        func(ctx context.Context, plan *domain.Plan) error
	getByIDFn       func(ctx context.Context, id string) (*domain.Plan, error)
	listFn          func(ctx context.Context) ([]domain.Plan, error)
	deleteFn        func(ctx context.Context, id string) error
	updateSerialsFn func(ctx context.Context, serials map[string]int) error
}

func (f *fakePlanRepo) Create(ctx context.Context, plan *domain.Plan) error {
	return f.createFn(ctx, plan)
}

func (f *fakePlanRepo) Update(ctx context.Context, plan *domain.Plan) error {
	return f.updateFn(ctx, plan)
}

func (f *fakePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakePlanRepo) List(ctx context.Context) ([]domain.Plan, error) {
	return f.listFn(ctx)
}

func (f *fakePlanRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakePlanRepo) UpdateSerials(ctx context.Context, serials map[string]int) error {
	return f.updateSerialsFn(ctx, serials)
}

func planFixtures() []domain.Plan {
	return []domain.Plan{
		{ID: "p1", Name: "Starter", IsActive: true, Serial: 0},
		{ID: "p2", Name: "Growth", IsActive: true, Serial: 1},
		{ID: "p3", Name: "Enterprise", IsActive: true, Serial: 2},
		{ID: "p4", Name: "Legacy", IsActive: false, Serial: 0},
	}
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code != code {
		t.Fatalf("error code = %s, want %s (err: %v)", domainErr.Code, code, err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Starter", "starter"},
		{"Growth Plan", "growth-plan"},
		{"  Pro  Plus  ", "pro-plus"},
		{"Team (Annual)", "team-annual"},
		{"100% Free!", "100-free"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.name); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPlanReorderAssignsSerialsByPosition(t *testing.T) {
	var captured map[string]int
	repo := &fakePlanRepo{
		listFn: func(ctx context.Context) ([]domain.Plan, error) { return planFixtures(), nil },
		updateSerialsFn: func(ctx context.Context, serials map[string]int) error {
			captured = serials
			return nil
		},
	}
	svc := NewPlanService(repo, nil, nil)

	if _, err := svc.Reorder(context.Background(), []string{"p3", "p1", "p2"}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	want := map[string]int{"p3": 0, "p1": 1, "p2": 2}
	if len(captured) != len(want) {
		t.Fatalf("persisted serials = %v, want %v", captured, want)
	}
	for id, serial := range want {
		if captured[id] != serial {
			t.Errorf("serial for %s = %d, want %d", id, captured[id], serial)
		}
	}
}

func TestPlanReorderRejectsIncompleteOrder(t *testing.T) {
	repo := &fakePlanRepo{
		listFn: func(ctx context.Context) ([]domain.Plan, error) { return planFixtures(), nil },
		updateSerialsFn: func(ctx context.Context, serials map[string]int) error {
			t.Fatal("UpdateSerials must not be called for an invalid order")
			return nil
		},
	}
	svc := NewPlanService(repo, nil, nil)

	_, err := svc.Reorder(context.Background(), []string{"p1", "p2"})
	wantCode(t, err, "VALIDATION_FAILED")
}

func TestPlanReorderRejectsInactivePlan(t *testing.T) {
	repo := &fakePlanRepo{
		listFn: func(ctx context.Context) ([]domain.Plan, error) { return planFixtures(), nil },
		updateSerialsFn: func(ctx context.Context, serials map[string]int) error {
			t.Fatal("UpdateSerials must not be called for an invalid order")
			return nil
		},
	}
	svc := NewPlanService(repo, nil, nil)

	_, err := svc.Reorder(context.Background(), []string{"p1", "p2", "p4"})
	wantCode(t, err, "VALIDATION_FAILED")
}

func TestPlanReorderRejectsDuplicates(t *testing.T) {
	repo := &fakePlanRepo{
		listFn: func(ctx context.Context) ([]domain.Plan, error) { return planFixtures(), nil },
		updateSerialsFn: func(ctx context.Context, serials map[string]int) error {
			t.Fatal("UpdateSerials must not be called for an invalid order")
			return nil
		},
	}
	svc := NewPlanService(repo, nil, nil)

	_, err := svc.Reorder(context.Background(), []string{"p1", "p1", "p2"})
	wantCode(t, err, "VALIDATION_FAILED")
}

func TestPlanCreateTrialRequiresSuccessor(t *testing.T) {
	repo := &fakePlanRepo{
		createFn: func(ctx context.Context, plan *domain.Plan) error {
			t.Fatal("Create must not be called for an invalid trial")
			return nil
		},
	}
	svc := NewPlanService(repo, nil, nil)

	_, err := svc.Create(context.Background(), PlanCreateInput{
		Name:          "Free Trial",
		DurationValue: 14,
		DurationUnit:  domain.DurationDay,
		IsTrial:       true,
	})
	wantCode(t, err, "VALIDATION_FAILED")
}

func TestPlanCreateTrialRejectsTrialSuccessor(t *testing.T) {
	successorID := "p9"
	repo := &fakePlanRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Plan, error) {
			return &domain.Plan{ID: id, IsTrial: true}, nil
		},
		createFn: func(ctx context.Context, plan *domain.Plan) error {
			t.Fatal("Create must not be called for an invalid trial")
			return nil
		},
	}
	svc := NewPlanService(repo, nil, nil)

	_, err := svc.Create(context.Background(), PlanCreateInput{
		Name:            "Free Trial",
		DurationValue:   14,
		DurationUnit:    domain.DurationDay,
		IsTrial:         true,
		PostTrialPlanID: &successorID,
	})
	wantCode(t, err, "VALIDATION_FAILED")
}

func TestPlanCreateActiveGetsNextSerial(t *testing.T) {
	var created *domain.Plan
	repo := &fakePlanRepo{
		listFn: func(ctx context.Context) ([]domain.Plan, error) { return planFixtures(), nil },
		createFn: func(ctx context.Context, plan *domain.Plan) error {
			created = plan
			return nil
		},
	}
	svc := NewPlanService(repo, nil, nil)

	plan, err := svc.Create(context.Background(), PlanCreateInput{
		Name:          "Scale",
		DurationValue: 1,
		DurationUnit:  domain.DurationMonth,
		Price:         99,
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created == nil {
		t.Fatal("plan was not persisted")
	}
	// Three active fixtures exist, so the new plan lands after them.
	if plan.Serial != 3 {
		t.Errorf("serial = %d, want 3", plan.Serial)
	}
	if plan.Slug != "scale" {
		t.Errorf("slug = %q, want %q", plan.Slug, "scale")
	}
}

func TestPlanUpdateSelfSuccessorRejected(t *testing.T) {
	trial := true
	self := "p1"
	repo := &fakePlanRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Plan, error) {
			return &domain.Plan{ID: "p1", Name: "Trial", DurationValue: 14, DurationUnit: domain.DurationDay}, nil
		},
		updateFn: func(ctx context.Context, plan *domain.Plan) error {
			t.Fatal("Update must not be called for an invalid trial")
			return nil
		},
	}
	svc := NewPlanService(repo, nil, nil)

	_, err := svc.Update(context.Background(), "p1", PlanUpdateInput{
		IsTrial:         &trial,
		PostTrialPlanID: &self,
	})
	wantCode(t, err, "VALIDATION_FAILED")
}

func TestPlanListActiveSortedBySerial(t *testing.T) {
	repo := &fakePlanRepo{
		listFn: func(ctx context.Context) ([]domain.Plan, error) {
			return []domain.Plan{
				{ID: "p2", IsActive: true, Serial: 1},
				{ID: "p4", IsActive: false, Serial: 0},
				{ID: "p3", IsActive: true, Serial: 2},
				{ID: "p1", IsActive: true, Serial: 0},
			}, nil
		},
	}
	svc := NewPlanService(repo, nil, nil)

	plans, err := svc.List(context.Background(), PlanViewActive)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	gotIDs := make([]string, 0, len(plans))
	for _, p := range plans {
		gotIDs = append(gotIDs, p.ID)
	}
	wantIDs := []string{"p1", "p2", "p3"}
	if len(gotIDs) != len(wantIDs) {
		t.Fatalf("active plans = %v, want %v", gotIDs, wantIDs)
	}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("active plans = %v, want %v", gotIDs, wantIDs)
		}
	}
}

func TestPlanPostTrialCandidatesExcludeTrialsAndSelf(t *testing.T) {
	repo := &fakePlanRepo{
		listFn: func(ctx context.Context) ([]domain.Plan, error) {
			return []domain.Plan{
				{ID: "p1", IsTrial: true},
				{ID: "p2"},
				{ID: "p3"},
			}, nil
		},
	}
	svc := NewPlanService(repo, nil, nil)

	candidates, err := svc.PostTrialCandidates(context.Background(), "p2")
	if err != nil {
		t.Fatalf("PostTrialCandidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != "p3" {
		t.Fatalf("candidates = %v, want only p3", candidates)
	}
}

func TestPlanGetNotFound(t *testing.T) {
	repo := &fakePlanRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Plan, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := NewPlanService(repo, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	wantCode(t, err, "NOT_FOUND")
}

func TestPlanReorderSurfacesRepositoryFailure(t *testing.T) {
	repo := &fakePlanRepo{
		listFn: func(ctx context.Context) ([]domain.Plan, error) { return planFixtures(), nil },
		updateSerialsFn: func(ctx context.Context, serials map[string]int) error {
			return errors.New("tx aborted")
		},
	}
	svc := NewPlanService(repo, nil, nil)

	if _, err := svc.Reorder(context.Background(), []string{"p1", "p2", "p3"}); err == nil {
		t.Fatal("expected error from failed serial update")
	}
}
