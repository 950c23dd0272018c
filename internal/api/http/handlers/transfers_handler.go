package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/plandesk/admin-api/internal/api/dto"
	"github.com/plandesk/admin-api/internal/auth"
	"github.com/plandesk/admin-api/internal/service"
	apperrors "github.com/plandesk/admin-api/pkg/util"
)

// TransfersHandler manages ticket transfer workflows.
type TransfersHandler struct {
	service *service.TransferService
}

// NewTransfersHandler constructs handler.
func NewTransfersHandler(transferService *service.TransferService) *TransfersHandler {
	return &TransfersHandler{service: transferService}
}

// RequestTransfer POST /admin/tickets/:id/transfer.
func (h *TransfersHandler) RequestTransfer(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.TransferCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	transfer, err := h.service.Request(c.UserContext(), principal.User, c.Params("id"), req.ToAgent, req.Reason)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTransferResponse(transfer)})
}

// ManageTransfer PATCH /admin/tickets/:id/transfer. Approves or rejects the
// pending transfer request on a ticket.
func (h *TransfersHandler) ManageTransfer(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.TransferManageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var action service.TransferAction
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case string(service.TransferActionApprove):
		action = service.TransferActionApprove
	case string(service.TransferActionReject):
		action = service.TransferActionReject
	default:
		return apperrors.NewValidationError("action must be approve or reject", map[string]any{"action": req.Action})
	}

	transfer, err := h.service.Manage(c.UserContext(), principal.User, c.Params("id"), action, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTransferResponse(transfer)})
}

// CancelTransfer DELETE /admin/tickets/:id/transfer.
func (h *TransfersHandler) CancelTransfer(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	transfer, err := h.service.Cancel(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTransferResponse(transfer)})
}
