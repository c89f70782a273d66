package domain

import "time"

// TaskStatus enumerates states for a ticket task. The labels are stored
// verbatim, including whitespace.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "Not Started"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusBlocked    TaskStatus = "Blocked"
)

// Task is a sub-unit of work within a ticket with its own time tracking.
type Task struct {
	ID          int64
	TicketID    int64
	TaskTypeID  *int64
	Description string
	Minutes     int
	Status      TaskStatus
	Notes       *string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidTaskStatus reports whether s is a member of the stored enum.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted, TaskStatusBlocked:
		return true
	}
	return false
}

// ApplyStatus moves the task to status as of now, stamping CompletedAt on
// the transition into Completed. A completion timestamp is never cleared
// once set, even when the status later moves away from Completed: it is
// the last time the task finished, not a live flag.
func (t *Task) ApplyStatus(status TaskStatus, now time.Time) {
	t.Status = status
	if status == TaskStatusCompleted {
		stamp := now
		t.CompletedAt = &stamp
	}
}

// RecordCompletion marks the task Completed with the total minutes spent.
// A negative minutes value is clamped to zero.
func (t *Task) RecordCompletion(minutes int, now time.Time) {
	if minutes < 0 {
		minutes = 0
	}
	t.Minutes = minutes
	t.ApplyStatus(TaskStatusCompleted, now)
}
