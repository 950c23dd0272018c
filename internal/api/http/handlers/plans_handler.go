package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plandesk/admin-api/internal/api/dto"
	"github.com/plandesk/admin-api/internal/service"
	apperrors "github.com/plandesk/admin-api/pkg/util"
)

// PlansHandler manages subscription plan endpoints.
type PlansHandler struct {
	service *service.PlanService
}

// NewPlansHandler constructs handler.
func NewPlansHandler(planService *service.PlanService) *PlansHandler {
	return &PlansHandler{service: planService}
}

// ListPlans GET /admin/plans?view=all|active.
func (h *PlansHandler) ListPlans(c *fiber.Ctx) error {
	view := service.PlanView(c.Query("view", string(service.PlanViewAll)))
	plans, err := h.service.List(c.UserContext(), view)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlanResponses(plans)})
}

// GetPlan GET /admin/plans/:id.
func (h *PlansHandler) GetPlan(c *fiber.Ctx) error {
	plan, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlanResponse(plan)})
}

// CreatePlan POST /admin/plans.
func (h *PlansHandler) CreatePlan(c *fiber.Ctx) error {
	var req dto.CreatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	plan, err := h.service.Create(c.UserContext(), service.PlanCreateInput{
		Name:            req.Name,
		Description:     req.Description,
		DurationValue:   req.DurationValue,
		DurationUnit:    req.DurationUnit,
		Price:           req.Price,
		Features:        req.Features,
		IsTrial:         req.IsTrial,
		PostTrialPlanID: req.PostTrialPlanID,
		IsActive:        req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewPlanResponse(plan)})
}

// UpdatePlan PATCH /admin/plans/:id.
func (h *PlansHandler) UpdatePlan(c *fiber.Ctx) error {
	var req dto.UpdatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	plan, err := h.service.Update(c.UserContext(), c.Params("id"), service.PlanUpdateInput{
		Name:            req.Name,
		Description:     req.Description,
		DurationValue:   req.DurationValue,
		DurationUnit:    req.DurationUnit,
		Price:           req.Price,
		Features:        req.Features,
		IsTrial:         req.IsTrial,
		PostTrialPlanID: req.PostTrialPlanID,
		ClearPostTrial:  req.ClearPostTrial,
		IsActive:        req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlanResponse(plan)})
}

// DeletePlan DELETE /admin/plans/:id.
func (h *PlansHandler) DeletePlan(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderPlans PUT /admin/plans/order. The payload lists every active plan id
// in the desired display order; serials are reassigned atomically.
func (h *PlansHandler) ReorderPlans(c *fiber.Ctx) error {
	var req dto.ReorderPlansRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.OrderedIDs) == 0 {
		return apperrors.NewValidationError("orderedIds required", nil)
	}
	plans, err := h.service.Reorder(c.UserContext(), req.OrderedIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlanResponses(plans)})
}

// PostTrialCandidates GET /admin/plans/:id/post-trial-candidates. Lists the
// plans a trial may roll over into.
func (h *PlansHandler) PostTrialCandidates(c *fiber.Ctx) error {
	plans, err := h.service.PostTrialCandidates(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlanResponses(plans)})
}
