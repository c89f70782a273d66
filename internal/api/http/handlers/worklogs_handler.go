package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orca-works/orca-crm/internal/api/dto"
	"github.com/orca-works/orca-crm/internal/service"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

// WorklogsHandler manages ticket worklog endpoints.
type WorklogsHandler struct {
	service *service.WorklogService
}

// NewWorklogsHandler constructs handler.
func NewWorklogsHandler(worklogService *service.WorklogService) *WorklogsHandler {
	return &WorklogsHandler{service: worklogService}
}

// ListByTicket GET /tickets/:id/worklogs.
func (h *WorklogsHandler) ListByTicket(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	worklogs, err := h.service.ListWorklogs(c.Context(), ticketID)
	if err != nil {
		return err
	}
	items := make([]dto.WorklogResponse, 0, len(worklogs))
	for _, worklog := range worklogs {
		items = append(items, dto.NewWorklogResponse(worklog))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /tickets/:id/worklogs.
func (h *WorklogsHandler) Create(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateWorklogRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	worklog, err := h.service.CreateWorklog(c.Context(), ticketID, service.WorklogCreateInput{
		Description: req.Description,
		Hours:       req.Hours,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewWorklogResponse(*worklog)})
}
