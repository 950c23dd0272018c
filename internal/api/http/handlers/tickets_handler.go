package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/plandesk/admin-api/internal/api/dto"
	"github.com/plandesk/admin-api/internal/auth"
	"github.com/plandesk/admin-api/internal/domain"
	"github.com/plandesk/admin-api/internal/service"
	apperrors "github.com/plandesk/admin-api/pkg/util"
)

// TicketsHandler manages the admin ticket endpoints.
type TicketsHandler struct {
	service  *service.TicketService
	resolver dto.AttachmentResolver
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, resolver dto.AttachmentResolver) *TicketsHandler {
	return &TicketsHandler{service: ticketService, resolver: resolver}
}

// ListTickets GET /admin/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	input := parseTicketListQuery(c)
	tickets, total, err := h.service.List(c.UserContext(), input)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i], h.resolver))
	}
	totalPages := 0
	if input.Limit > 0 {
		totalPages = (total + input.Limit - 1) / input.Limit
	}
	return c.JSON(fiber.Map{"data": dto.TicketListResponse{
		Items:      items,
		Page:       input.Page,
		Limit:      input.Limit,
		Total:      total,
		TotalPages: totalPages,
	}})
}

// GetTicket GET /admin/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, h.resolver)})
}

// UpdateStatus PATCH /admin/tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.UpdateStatus(c.UserContext(), principal.User, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, h.resolver)})
}

// UpdateCategory PATCH /admin/tickets/:id/category. A request carrying
// createName creates the category first, then assigns it.
func (h *TicketsHandler) UpdateCategory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AssignCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if name := strings.TrimSpace(req.CreateName); name != "" {
		ticket, category, err := h.service.CreateAndAssignCategory(c.UserContext(), principal.User, c.Params("id"), name)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": fiber.Map{
			"ticket":   dto.NewTicketResponse(ticket, h.resolver),
			"category": dto.NewCategoryResponse(category),
		}})
	}

	ticket, err := h.service.UpdateCategory(c.UserContext(), principal.User, c.Params("id"), req.CategoryID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, h.resolver)})
}

// AssignTicket PATCH /admin/tickets/:id/assign.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Assign(c.UserContext(), principal.User, c.Params("id"), req.AssignedTo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, h.resolver)})
}

// DeleteTicket DELETE /admin/tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveAttachment DELETE /admin/tickets/:id/attachments?file=<name>.
func (h *TicketsHandler) RemoveAttachment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	fileName := strings.TrimSpace(c.Query("file"))
	if fileName == "" {
		return apperrors.NewValidationError("file query parameter required", nil)
	}
	ticket, err := h.service.RemoveAttachment(c.UserContext(), principal.User, c.Params("id"), fileName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, h.resolver)})
}

func parseTicketListQuery(c *fiber.Ctx) service.TicketListInput {
	input := service.TicketListInput{
		Search: strings.TrimSpace(c.Query("search")),
		Page:   parsePositiveInt(c.Query("page"), 1),
		Limit:  parsePositiveInt(c.Query("limit"), 20),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.TicketStatus(strings.ToUpper(raw))
		if domain.ValidTicketStatus(status) {
			input.Status = &status
		}
	}
	if raw := c.Query("assignedTo"); raw != "" {
		input.AssignedTo = &raw
	}
	if raw := c.Query("categoryId"); raw != "" {
		input.CategoryID = &raw
	}
	if raw := c.Query("startDate"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			input.StartDate = &ts
		}
	}
	if raw := c.Query("endDate"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			input.EndDate = &ts
		}
	}
	if raw := c.Query("hasPendingTransfer"); raw != "" {
		if pending, err := strconv.ParseBool(raw); err == nil {
			input.HasPendingTransfer = &pending
		}
	}
	return input
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
