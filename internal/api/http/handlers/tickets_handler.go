package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orca-works/orca-crm/internal/api/dto"
	"github.com/orca-works/orca-crm/internal/repository"
	"github.com/orca-works/orca-crm/internal/service"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

// dateParamLayout matches the compact date carried in ticket numbers.
const dateParamLayout = "20060102"

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /tickets. Without a status filter, closed tickets are hidden.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	filter := repository.TicketFilter{
		Status: c.Query("status"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return apperrors.NewValidationError("invalid limit", map[string]any{"limit": limitStr})
		}
		filter.Limit = limit
	}

	tickets, err := h.service.ListTickets(c.Context(), filter)
	if err != nil {
		return err
	}
	now := time.Now()
	items := make([]dto.TicketSummaryResponse, 0, len(tickets))
	for _, summary := range tickets {
		items = append(items, dto.NewTicketSummaryResponse(summary, now))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.CreateTicket(c.Context(), service.TicketCreateInput{
		CustomerID:   req.CustomerID,
		Subject:      req.Subject,
		Description:  req.Description,
		Priority:     req.Priority,
		TicketNumber: req.TicketNumber,
		TicketTypeID: req.TicketTypeID,
		DeviceID:     req.DeviceID,
		DueAt:        req.DueAt,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateTicketResult{Success: true, ID: ticket.ID})
}

// CountByDate GET /tickets/count?date=YYYYMMDD. Without a date the count
// is for today.
func (h *TicketsHandler) CountByDate(c *fiber.Ctx) error {
	day, err := parseDateQuery(c)
	if err != nil {
		return err
	}
	count, err := h.service.CountCreatedOn(c.Context(), day)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TicketCountResponse{Count: count}})
}

// NextNumber GET /tickets/next-number?date=YYYYMMDD. The returned number
// is a candidate; the unique constraint settles concurrent creations.
func (h *TicketsHandler) NextNumber(c *fiber.Ctx) error {
	day, err := parseDateQuery(c)
	if err != nil {
		return err
	}
	number, err := h.service.NextTicketNumber(c.Context(), day)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NextTicketNumberResponse{TicketNumber: number}})
}

// GetByNumber GET /tickets/by-number/:ticketNumber.
func (h *TicketsHandler) GetByNumber(c *fiber.Ctx) error {
	detail, err := h.service.GetByNumber(c.Context(), c.Params("ticketNumber"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetailResponse(*detail, time.Now())})
}

// UpdateByNumber PUT /tickets/by-number/:ticketNumber.
func (h *TicketsHandler) UpdateByNumber(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	detail, err := h.service.UpdateByNumber(c.Context(), c.Params("ticketNumber"), service.TicketUpdateInput{
		Subject:      req.Subject,
		Status:       req.Status,
		DueAt:        req.DueAt,
		Description:  req.Description,
		TicketTypeID: req.TicketTypeID,
		DeviceID:     req.DeviceID,
		Priority:     req.Priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetailResponse(*detail, time.Now())})
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteTicket(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func parseDateQuery(c *fiber.Ctx) (time.Time, error) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return time.Now(), nil
	}
	day, err := time.ParseInLocation(dateParamLayout, dateStr, time.Local)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date, expected YYYYMMDD", map[string]any{"date": dateStr})
	}
	return day, nil
}
