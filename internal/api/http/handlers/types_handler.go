package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orca-works/orca-crm/internal/api/dto"
	"github.com/orca-works/orca-crm/internal/repository"
)

// TypesHandler serves the lookup dictionaries used by the forms.
type TypesHandler struct {
	types repository.TypeRepository
}

// NewTypesHandler constructs handler.
func NewTypesHandler(typeRepo repository.TypeRepository) *TypesHandler {
	return &TypesHandler{types: typeRepo}
}

// ListTicketTypes GET /ticket-types.
func (h *TypesHandler) ListTicketTypes(c *fiber.Ctx) error {
	types, err := h.types.ListTicketTypes(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TypeResponse, 0, len(types))
	for _, t := range types {
		items = append(items, dto.NewTicketTypeResponse(t))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListTaskTypes GET /task-types.
func (h *TypesHandler) ListTaskTypes(c *fiber.Ctx) error {
	types, err := h.types.ListTaskTypes(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TypeResponse, 0, len(types))
	for _, t := range types {
		items = append(items, dto.NewTaskTypeResponse(t))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListDeviceTypes GET /device-types.
func (h *TypesHandler) ListDeviceTypes(c *fiber.Ctx) error {
	types, err := h.types.ListDeviceTypes(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TypeResponse, 0, len(types))
	for _, t := range types {
		items = append(items, dto.NewDeviceTypeResponse(t))
	}
	return c.JSON(fiber.Map{"data": items})
}
