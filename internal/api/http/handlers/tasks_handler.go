package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orca-works/orca-crm/internal/api/dto"
	"github.com/orca-works/orca-crm/internal/service"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

// TasksHandler manages ticket task endpoints.
type TasksHandler struct {
	service *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{service: taskService}
}

// ListByTicket GET /tickets/:id/tasks.
func (h *TasksHandler) ListByTicket(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	tasks, err := h.service.ListTasks(c.Context(), ticketID)
	if err != nil {
		return err
	}
	now := time.Now()
	items := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, dto.NewTaskResponse(task, now))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /tickets/:id/tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.Context(), ticketID, service.TaskCreateInput{
		TaskTypeID:  req.TaskTypeID,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewPlainTaskResponse(*task, time.Now())})
}

// Update PUT /tasks/:id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	task, err := h.service.UpdateTask(c.Context(), id, service.TaskUpdateInput{
		Description: req.Description,
		TaskTypeID:  req.TaskTypeID,
		Minutes:     req.Minutes,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlainTaskResponse(*task, time.Now())})
}

// Delete DELETE /tasks/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteTask(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
