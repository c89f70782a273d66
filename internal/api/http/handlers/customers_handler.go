package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orca-works/orca-crm/internal/api/dto"
	"github.com/orca-works/orca-crm/internal/service"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

// CustomersHandler manages customer endpoints.
type CustomersHandler struct {
	service *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{service: customerService}
}

// List GET /customers. Every customer comes back with its live ticket
// breakdown; customers without tickets show zeros.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	customers, err := h.service.ListWithTicketCounts(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CustomerListItem, 0, len(customers))
	for _, entry := range customers {
		items = append(items, dto.NewCustomerListItem(entry.Customer, entry.Counts))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	customer, err := h.service.CreateCustomer(c.Context(), service.CustomerCreateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Unit:        req.Unit,
		Street:      req.Street,
		City:        req.City,
		PostalCode:  req.PostalCode,
		PhoneNumber: req.PhoneNumber,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCustomerResponse(*customer)})
}

// Get GET /customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.service.GetCustomer(c.Context(), id)
	if err != nil {
		return err
	}

	now := time.Now()
	tickets := make([]dto.TicketSummaryResponse, 0, len(detail.Tickets))
	for _, summary := range detail.Tickets {
		tickets = append(tickets, dto.NewTicketSummaryResponse(summary, now))
	}
	return c.JSON(fiber.Map{"data": dto.CustomerDetailResponse{
		CustomerResponse: dto.NewCustomerResponse(detail.Customer),
		Tickets:          tickets,
	}})
}

// Update PUT /customers/:id.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	customer, err := h.service.UpdateCustomer(c.Context(), id, service.CustomerUpdateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Status:      req.Status,
		Unit:        req.Unit,
		Street:      req.Street,
		City:        req.City,
		PostalCode:  req.PostalCode,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomerResponse(*customer)})
}

// Delete DELETE /customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteCustomer(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, map[string]any{name: c.Params(name)})
	}
	return id, nil
}
