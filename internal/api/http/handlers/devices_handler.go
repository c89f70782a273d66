package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orca-works/orca-crm/internal/api/dto"
	"github.com/orca-works/orca-crm/internal/service"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

// DevicesHandler manages customer device endpoints.
type DevicesHandler struct {
	service *service.DeviceService
}

// NewDevicesHandler constructs handler.
func NewDevicesHandler(deviceService *service.DeviceService) *DevicesHandler {
	return &DevicesHandler{service: deviceService}
}

// ListByCustomer GET /customers/:id/devices.
func (h *DevicesHandler) ListByCustomer(c *fiber.Ctx) error {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	devices, err := h.service.ListDevices(c.Context(), customerID)
	if err != nil {
		return err
	}
	items := make([]dto.DeviceResponse, 0, len(devices))
	for _, device := range devices {
		items = append(items, dto.NewDeviceResponse(device))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /customers/:id/devices.
func (h *DevicesHandler) Create(c *fiber.Ctx) error {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	device, err := h.service.CreateDevice(c.Context(), customerID, service.DeviceCreateInput{
		DeviceTypeID:     req.DeviceTypeID,
		BrandModel:       req.BrandModel,
		SerialNumber:     req.SerialNumber,
		FirstServiceDate: req.FirstServiceDate,
		LastServiceDate:  req.LastServiceDate,
		Notes:            req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewPlainDeviceResponse(*device)})
}

// Update PUT /devices/:id.
func (h *DevicesHandler) Update(c *fiber.Ctx) error {
	equipmentID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	device, err := h.service.UpdateDevice(c.Context(), equipmentID, service.DeviceUpdateInput{
		DeviceTypeID:     req.DeviceTypeID,
		BrandModel:       req.BrandModel,
		SerialNumber:     req.SerialNumber,
		FirstServiceDate: req.FirstServiceDate,
		LastServiceDate:  req.LastServiceDate,
		Notes:            req.Notes,
		CustodyStatus:    req.CustodyStatus,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlainDeviceResponse(*device)})
}

// Delete DELETE /devices/:id.
func (h *DevicesHandler) Delete(c *fiber.Ctx) error {
	equipmentID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteDevice(c.Context(), equipmentID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
