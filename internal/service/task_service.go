package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orca-works/orca-crm/internal/domain"
	"github.com/orca-works/orca-crm/internal/events"
	"github.com/orca-works/orca-crm/internal/repository"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

// TaskService coordinates the task lifecycle within a ticket.
type TaskService struct {
	tasks      repository.TaskRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// TaskDependencies bundles repositories for the task service.
type TaskDependencies struct {
	TaskRepo   repository.TaskRepository
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
}

// TaskCreateInput describes task creation payload.
type TaskCreateInput struct {
	TaskTypeID  *int64
	Description string
	Status      domain.TaskStatus
}

// TaskUpdateInput describes a task update. Status is mandatory; nil
// fields are left unchanged. When Status is Completed the update is a
// completion record: minutes (default 0) and the completion timestamp
// are written, and descriptive fields are not touched.
type TaskUpdateInput struct {
	Description *string
	TaskTypeID  *int64
	Minutes     *int
	Status      domain.TaskStatus
	Notes       *string
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListTasks returns a ticket's tasks joined with their type names.
func (s *TaskService) ListTasks(ctx context.Context, ticketID int64) ([]repository.TaskWithType, error) {
	return s.tasks.ListByTicket(ctx, ticketID)
}

// CreateTask attaches a new task to a ticket. Description is required;
// status defaults to Not Started.
func (s *TaskService) CreateTask(ctx context.Context, ticketID int64, input TaskCreateInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("task_description required", nil)
	}
	if input.Status == "" {
		input.Status = domain.TaskStatusNotStarted
	}
	if !domain.ValidTaskStatus(input.Status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": input.Status})
	}

	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}

	task := &domain.Task{
		TicketID:    ticketID,
		TaskTypeID:  input.TaskTypeID,
		Description: input.Description,
		Status:      input.Status,
	}
	if input.Status == domain.TaskStatusCompleted {
		task.ApplyStatus(domain.TaskStatusCompleted, time.Now())
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask applies a completion record or a field edit to a task. A
// missing status is a validation failure, never a silent default.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, input TaskUpdateInput) (*domain.Task, error) {
	if input.Status == "" {
		return nil, apperrors.NewValidationError("status required", nil)
	}
	if !domain.ValidTaskStatus(input.Status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": input.Status})
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("task", map[string]any{"id": id})
		}
		return nil, err
	}

	wasCompleted := task.Status == domain.TaskStatusCompleted

	if input.Status == domain.TaskStatusCompleted {
		minutes := 0
		if input.Minutes != nil {
			minutes = *input.Minutes
		}
		task.RecordCompletion(minutes, time.Now())
		if input.Notes != nil {
			task.Notes = input.Notes
		}
	} else {
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.TaskTypeID != nil {
			task.TaskTypeID = input.TaskTypeID
		}
		if input.Minutes != nil {
			minutes := *input.Minutes
			if minutes < 0 {
				minutes = 0
			}
			task.Minutes = minutes
		}
		if input.Notes != nil {
			task.Notes = input.Notes
		}
		// Moving away from Completed deliberately keeps the old
		// completed_at: it is the last completion time, not a flag.
		task.ApplyStatus(input.Status, time.Now())
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if !wasCompleted && task.Status == domain.TaskStatusCompleted && task.CompletedAt != nil {
		s.publishEvent(ctx, events.Event{
			Type: events.EventTaskCompleted,
			Payload: events.TaskCompletedPayload{
				TaskID:      task.ID,
				TicketID:    task.TicketID,
				Minutes:     task.Minutes,
				CompletedAt: *task.CompletedAt,
			},
		})
	}
	return task, nil
}

// DeleteTask removes a task unconditionally by id.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("task", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

func (s *TaskService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
