package dto

import (
	"time"

	"github.com/orca-works/orca-crm/internal/domain"
	"github.com/orca-works/orca-crm/internal/repository"
)

// CreateTaskRequest payload. Status defaults to Not Started when omitted.
type CreateTaskRequest struct {
	TaskTypeID  *int64            `json:"task_type_id"`
	Description string            `json:"task_description" validate:"required"`
	Status      domain.TaskStatus `json:"status"`
}

// UpdateTaskRequest payload. Status is mandatory on every update; with
// status Completed the request is a completion record and minutes
// defaults to zero when omitted.
type UpdateTaskRequest struct {
	Description *string           `json:"task_description"`
	TaskTypeID  *int64            `json:"task_type_id"`
	Minutes     *int              `json:"minutes"`
	Status      domain.TaskStatus `json:"status" validate:"required"`
	Notes       *string           `json:"notes"`
}

// TaskResponse is a task row with its type name and elapsed-time text.
type TaskResponse struct {
	ID           int64             `json:"id"`
	TicketID     int64             `json:"ticket_id"`
	TaskTypeID   *int64            `json:"task_type_id"`
	TaskTypeName *string           `json:"task_type_name"`
	Description  string            `json:"task_description"`
	Minutes      int               `json:"minutes"`
	Status       domain.TaskStatus `json:"status"`
	Notes        *string           `json:"notes"`
	CompletedAt  *time.Time        `json:"completed_at"`
	CompletedAgo string            `json:"completed_ago"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// NewTaskResponse maps a joined task row.
func NewTaskResponse(task repository.TaskWithType, now time.Time) TaskResponse {
	resp := TaskResponse{
		ID:           task.ID,
		TicketID:     task.TicketID,
		TaskTypeID:   task.TaskTypeID,
		TaskTypeName: task.TaskTypeName,
		Description:  task.Description,
		Minutes:      task.Minutes,
		Status:       task.Status,
		Notes:        task.Notes,
		CompletedAt:  task.CompletedAt,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
	if task.CompletedAt != nil {
		resp.CompletedAgo = domain.DaysSince(*task.CompletedAt, now)
	}
	return resp
}

// NewPlainTaskResponse maps a bare task without a type name.
func NewPlainTaskResponse(task domain.Task, now time.Time) TaskResponse {
	return NewTaskResponse(repository.TaskWithType{Task: task}, now)
}
