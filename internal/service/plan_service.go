package service

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/plandesk/admin-api/internal/domain"
	"github.com/plandesk/admin-api/internal/events"
	"github.com/plandesk/admin-api/internal/persistence"
	"github.com/plandesk/admin-api/internal/repository"
	apperrors "github.com/plandesk/admin-api/pkg/util"
)

const pgForeignKeyViolation = "23503"

// PlanView selects how the plan list is presented.
type PlanView string

const (
	PlanViewAll    PlanView = "all"
	PlanViewActive PlanView = "active"
)

// PlanService manages subscription plans and their display ordering.
type PlanService struct {
	plans      repository.PlanRepository
	cache      *persistence.PlanCache
	dispatcher events.Dispatcher
}

// NewPlanService constructs the service.
func NewPlanService(plans repository.PlanRepository, cache *persistence.PlanCache, dispatcher events.Dispatcher) *PlanService {
	return &PlanService{plans: plans, cache: cache, dispatcher: dispatcher}
}

// PlanCreateInput describes plan creation payload.
type PlanCreateInput struct {
	Name            string
	Description     string
	DurationValue   int
	DurationUnit    domain.DurationUnit
	Price           float64
	Features        []string
	IsTrial         bool
	PostTrialPlanID *string
	IsActive        bool
}

// PlanUpdateInput describes a partial plan update. Nil fields are untouched.
type PlanUpdateInput struct {
	Name            *string
	Description     *string
	DurationValue   *int
	DurationUnit    *domain.DurationUnit
	Price           *float64
	Features        []string
	IsTrial         *bool
	PostTrialPlanID *string
	ClearPostTrial  bool
	IsActive        *bool
}

// Create validates and stores a new plan. Active plans get the next serial.
func (s *PlanService) Create(ctx context.Context, input PlanCreateInput) (*domain.Plan, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if input.DurationValue <= 0 {
		return nil, apperrors.NewValidationError("duration value must be positive", nil)
	}
	if !domain.ValidDurationUnit(input.DurationUnit) {
		return nil, apperrors.NewValidationError("invalid duration unit", map[string]any{"duration_unit": input.DurationUnit})
	}
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price cannot be negative", nil)
	}

	plan := &domain.Plan{
		Name:            name,
		Slug:            Slugify(name),
		Description:     strings.TrimSpace(input.Description),
		DurationValue:   input.DurationValue,
		DurationUnit:    input.DurationUnit,
		Price:           input.Price,
		Features:        input.Features,
		IsTrial:         input.IsTrial,
		PostTrialPlanID: input.PostTrialPlanID,
		IsActive:        input.IsActive,
	}
	if err := s.validateTrial(ctx, plan); err != nil {
		return nil, err
	}

	if plan.IsActive {
		existing, err := s.listAll(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range existing {
			if p.IsActive {
				plan.Serial++
			}
		}
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperrors.NewConflict("a plan with this name already exists", map[string]any{"slug": plan.Slug})
		}
		return nil, apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx)
	return plan, nil
}

// Update applies a partial update to a plan, re-deriving the slug when the
// name changes and re-checking the trial invariant.
func (s *PlanService) Update(ctx context.Context, id string, input PlanUpdateInput) (*domain.Plan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name required", nil)
		}
		plan.Name = name
		plan.Slug = Slugify(name)
	}
	if input.Description != nil {
		plan.Description = strings.TrimSpace(*input.Description)
	}
	if input.DurationValue != nil {
		if *input.DurationValue <= 0 {
			return nil, apperrors.NewValidationError("duration value must be positive", nil)
		}
		plan.DurationValue = *input.DurationValue
	}
	if input.DurationUnit != nil {
		if !domain.ValidDurationUnit(*input.DurationUnit) {
			return nil, apperrors.NewValidationError("invalid duration unit", map[string]any{"duration_unit": *input.DurationUnit})
		}
		plan.DurationUnit = *input.DurationUnit
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.NewValidationError("price cannot be negative", nil)
		}
		plan.Price = *input.Price
	}
	if input.Features != nil {
		plan.Features = input.Features
	}
	if input.IsTrial != nil {
		plan.IsTrial = *input.IsTrial
	}
	if input.ClearPostTrial {
		plan.PostTrialPlanID = nil
	} else if input.PostTrialPlanID != nil {
		plan.PostTrialPlanID = input.PostTrialPlanID
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := s.validateTrial(ctx, plan); err != nil {
		return nil, err
	}

	if err := s.plans.Update(ctx, plan); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperrors.NewConflict("a plan with this name already exists", map[string]any{"slug": plan.Slug})
		}
		return nil, apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx)
	return plan, nil
}

// Get fetches one plan.
func (s *PlanService) Get(ctx context.Context, id string) (*domain.Plan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("plan", map[string]any{"plan_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return plan, nil
}

// List returns plans for a view: "all" in storage order, "active" restricted
// to active plans sorted by serial.
func (s *PlanService) List(ctx context.Context, view PlanView) ([]domain.Plan, error) {
	plans, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	if view != PlanViewActive {
		return plans, nil
	}

	active := make([]domain.Plan, 0, len(plans))
	for _, p := range plans {
		if p.IsActive {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Serial < active[j].Serial
	})
	return active, nil
}

// PostTrialCandidates lists plans eligible as a trial's successor: non-trial
// plans other than the plan being edited.
func (s *PlanService) PostTrialCandidates(ctx context.Context, excludeID string) ([]domain.Plan, error) {
	plans, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]domain.Plan, 0, len(plans))
	for _, p := range plans {
		if p.IsTrial || p.ID == excludeID {
			continue
		}
		candidates = append(candidates, p)
	}
	return candidates, nil
}

// Delete removes a plan. Plans referenced as a post-trial successor cannot be
// deleted.
func (s *PlanService) Delete(ctx context.Context, id string) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("plan", map[string]any{"plan_id": id})
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return apperrors.NewConflict("plan is referenced as a post-trial plan", map[string]any{"plan_id": id})
		}
		return apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx)
	return nil
}

// Reorder reassigns serials so each active plan's serial equals its index in
// orderedIDs. The whole reorder persists in one transaction; a failure leaves
// the stored order untouched.
func (s *PlanService) Reorder(ctx context.Context, orderedIDs []string) ([]domain.Plan, error) {
	if len(orderedIDs) == 0 {
		return nil, apperrors.NewValidationError("ordered ids required", nil)
	}

	plans, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	active := make(map[string]bool, len(plans))
	for _, p := range plans {
		if p.IsActive {
			active[p.ID] = true
		}
	}

	if len(orderedIDs) != len(active) {
		return nil, apperrors.NewValidationError("ordered ids must cover every active plan", map[string]any{
			"expected": len(active),
			"got":      len(orderedIDs),
		})
	}
	serials := make(map[string]int, len(orderedIDs))
	for index, id := range orderedIDs {
		if !active[id] {
			return nil, apperrors.NewValidationError("unknown or inactive plan in order", map[string]any{"plan_id": id})
		}
		if _, dup := serials[id]; dup {
			return nil, apperrors.NewValidationError("duplicate plan in order", map[string]any{"plan_id": id})
		}
		serials[id] = index
	}

	if err := s.plans.UpdateSerials(ctx, serials); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx)
	publishWithDefaults(ctx, s.dispatcher, events.Event{
		Type:    events.EventPlansReordered,
		Payload: events.PlansReorderedPayload{OrderedIDs: orderedIDs},
	})
	return s.List(ctx, PlanViewActive)
}

func (s *PlanService) listAll(ctx context.Context) ([]domain.Plan, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Set(ctx, plans)
	return plans, nil
}

func (s *PlanService) validateTrial(ctx context.Context, plan *domain.Plan) error {
	if !plan.IsTrial {
		return nil
	}
	if plan.PostTrialPlanID == nil {
		return apperrors.NewValidationError("a trial plan requires a post-trial plan", nil)
	}
	if plan.ID != "" && *plan.PostTrialPlanID == plan.ID {
		return apperrors.NewValidationError("a trial plan cannot be its own post-trial plan", nil)
	}
	successor, err := s.plans.GetByID(ctx, *plan.PostTrialPlanID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("post-trial plan", map[string]any{"plan_id": *plan.PostTrialPlanID})
		}
		return apperrors.MapError(err)
	}
	if successor.IsTrial {
		return apperrors.NewValidationError("post-trial plan cannot be a trial plan", map[string]any{"plan_id": successor.ID})
	}
	return nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a plan slug from its name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
