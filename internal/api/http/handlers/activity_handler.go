package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plandesk/admin-api/internal/activity"
	"github.com/plandesk/admin-api/internal/api/dto"
	"github.com/plandesk/admin-api/internal/service"
)

// ActivityHandler serves the ticket activity log.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: activityService}
}

// ListActivity GET /admin/tickets/:id/activity?page=&limit=&type=.
func (h *ActivityHandler) ListActivity(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), activity.DefaultLimit)
	filter := activity.FilterType(c.Query("type", string(activity.FilterAll)))

	result, err := h.service.List(c.UserContext(), c.Params("id"), page, limit, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewActivityPageResponse(result)})
}
