package dto

import (
	"time"

	"github.com/plandesk/admin-api/internal/domain"
)

// CreatePlanRequest payload.
type CreatePlanRequest struct {
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	DurationValue   int                 `json:"durationValue"`
	DurationUnit    domain.DurationUnit `json:"durationUnit"`
	Price           float64             `json:"price"`
	Features        []string            `json:"features"`
	IsTrial         bool                `json:"isTrial"`
	PostTrialPlanID *string             `json:"postTrialPlan"`
	IsActive        bool                `json:"isActive"`
}

// UpdatePlanRequest payload; nil fields are untouched. ClearPostTrial drops
// the post-trial reference.
type UpdatePlanRequest struct {
	Name            *string              `json:"name"`
	Description     *string              `json:"description"`
	DurationValue   *int                 `json:"durationValue"`
	DurationUnit    *domain.DurationUnit `json:"durationUnit"`
	Price           *float64             `json:"price"`
	Features        []string             `json:"features"`
	IsTrial         *bool                `json:"isTrial"`
	PostTrialPlanID *string              `json:"postTrialPlan"`
	ClearPostTrial  bool                 `json:"clearPostTrialPlan,omitempty"`
	IsActive        *bool                `json:"isActive"`
}

// ReorderPlansRequest payload: every active plan id in display order.
type ReorderPlansRequest struct {
	OrderedIDs []string `json:"orderedIds"`
}

// PlanResponse projects a plan.
type PlanResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Slug            string              `json:"slug"`
	Description     string              `json:"description"`
	DurationValue   int                 `json:"durationValue"`
	DurationUnit    domain.DurationUnit `json:"durationUnit"`
	Price           float64             `json:"price"`
	Features        []string            `json:"features"`
	IsTrial         bool                `json:"isTrial"`
	PostTrialPlanID *string             `json:"postTrialPlan"`
	IsActive        bool                `json:"isActive"`
	Serial          int                 `json:"serial"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// NewPlanResponse maps a domain plan.
func NewPlanResponse(plan *domain.Plan) PlanResponse {
	return PlanResponse{
		ID:              plan.ID,
		Name:            plan.Name,
		Slug:            plan.Slug,
		Description:     plan.Description,
		DurationValue:   plan.DurationValue,
		DurationUnit:    plan.DurationUnit,
		Price:           plan.Price,
		Features:        plan.Features,
		IsTrial:         plan.IsTrial,
		PostTrialPlanID: plan.PostTrialPlanID,
		IsActive:        plan.IsActive,
		Serial:          plan.Serial,
		CreatedAt:       plan.CreatedAt,
		UpdatedAt:       plan.UpdatedAt,
	}
}

// NewPlanResponses maps a slice of plans.
func NewPlanResponses(plans []domain.Plan) []PlanResponse {
	items := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		items = append(items, NewPlanResponse(&plans[i]))
	}
	return items
}
