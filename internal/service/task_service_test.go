package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orca-works/orca-crm/internal/domain"
	"github.com/orca-works/orca-crm/internal/events"
	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

func newTaskFixture(t *testing.T) (*TaskService, *fakeTaskRepo, *fakeTicketRepo, *recordingDispatcher) {
	t.Helper()
	tasks := newFakeTaskRepo()
	tickets := newFakeTicketRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewTaskService(TaskDependencies{
		TaskRepo:   tasks,
		TicketRepo: tickets,
		Dispatcher: dispatcher,
	})
	return svc, tasks, tickets, dispatcher
}

func seedTicket(t *testing.T, tickets *fakeTicketRepo) domain.Ticket {
	t.Helper()
	ticket := domain.Ticket{
		CustomerID:   1,
		Subject:      "tune-up",
		TicketNumber: "OIT_20250310_001",
		Status:       domain.TicketStatusOpen,
		Priority:     domain.TicketPriorityNormal,
	}
	require.NoError(t, tickets.Create(context.Background(), &ticket))
	return ticket
}

func TestCreateTaskDefaultsStatus(t *testing.T) {
	svc, _, tickets, _ := newTaskFixture(t)
	ticket := seedTicket(t, tickets)

	task, err := svc.CreateTask(context.Background(), ticket.ID, TaskCreateInput{
		Description: "replace thermal paste",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusNotStarted, task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestCreateTaskRequiresDescription(t *testing.T) {
	svc, _, tickets, _ := newTaskFixture(t)
	ticket := seedTicket(t, tickets)

	_, err := svc.CreateTask(context.Background(), ticket.ID, TaskCreateInput{Description: "   "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestCreateTaskUnknownTicket(t *testing.T) {
	svc, _, _, _ := newTaskFixture(t)

	_, err := svc.CreateTask(context.Background(), 42, TaskCreateInput{Description: "diagnose"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestUpdateTaskRequiresStatus(t *testing.T) {
	svc, _, tickets, _ := newTaskFixture(t)
	ticket := seedTicket(t, tickets)
	task, err := svc.CreateTask(context.Background(), ticket.ID, TaskCreateInput{Description: "diagnose"})
	require.NoError(t, err)

	_, err = svc.UpdateTask(context.Background(), task.ID, TaskUpdateInput{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateTaskCompletionDefaultsMinutesToZero(t *testing.T) {
	svc, _, tickets, dispatcher := newTaskFixture(t)
	ticket := seedTicket(t, tickets)
	task, err := svc.CreateTask(context.Background(), ticket.ID, TaskCreateInput{Description: "diagnose"})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(context.Background(), task.ID, TaskUpdateInput{
		Status: domain.TaskStatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
	assert.Equal(t, 0, updated.Minutes)
	require.NotNil(t, updated.CompletedAt)
	assert.WithinDuration(t, time.Now(), *updated.CompletedAt, time.Minute)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTaskCompleted, published[0].Type)
}

func TestUpdateTaskCompletionRecordsMinutes(t *testing.T) {
	svc, _, tickets, _ := newTaskFixture(t)
	ticket := seedTicket(t, tickets)
	task, err := svc.CreateTask(context.Background(), ticket.ID, TaskCreateInput{Description: "diagnose"})
	require.NoError(t, err)

	minutes := 45
	updated, err := svc.UpdateTask(context.Background(), task.ID, TaskUpdateInput{
		Status:  domain.TaskStatusCompleted,
		Minutes: &minutes,
	})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.Minutes)
	assert.Equal(t, "diagnose", updated.Description)
}

func TestUpdateTaskCompletionLeavesDescriptionAlone(t *testing.T) {
	svc, _, tickets, _ := newTaskFixture(t)
	ticket := seedTicket(t, tickets)
	task, err := svc.CreateTask(context.Background(), ticket.ID, TaskCreateInput{Description: "diagnose"})
	require.NoError(t, err)

	other := "something else"
	updated, err := svc.UpdateTask(context.Background(), task.ID, TaskUpdateInput{
		Status:      domain.TaskStatusCompleted,
		Description: &other,
	})
	require.NoError(t, err)
	assert.Equal(t, "diagnose", updated.Description)
}

func TestUpdateTaskEditKeepsCompletedAt(t *testing.T) {
	svc, _, tickets, dispatcher := newTaskFixture(t)
	ticket := seedTicket(t, tickets)
	task, err := svc.CreateTask(context.Background(), ticket.ID, TaskCreateInput{Description: "diagnose"})
	require.NoError(t, err)

	completed, err := svc.UpdateTask(context.Background(), task.ID, TaskUpdateInput{
		Status: domain.TaskStatusCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	stamp := *completed.CompletedAt

	reopened, err := svc.UpdateTask(context.Background(), task.ID, TaskUpdateInput{
		Status: domain.TaskStatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, reopened.Status)
	require.NotNil(t, reopened.CompletedAt)
	assert.Equal(t, stamp, *reopened.CompletedAt)

	// Only the first transition into Completed publishes.
	assert.Len(t, dispatcher.published(), 1)
}

func TestUpdateTaskRejectsUnknownStatus(t *testing.T) {
	svc, _, tickets, _ := newTaskFixture(t)
	ticket := seedTicket(t, tickets)
	task, err := svc.CreateTask(context.Background(), ticket.ID, TaskCreateInput{Description: "diagnose"})
	require.NoError(t, err)

	_, err = svc.UpdateTask(context.Background(), task.ID, TaskUpdateInput{
		Status: domain.TaskStatus("Done"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestDeleteTaskUnknownID(t *testing.T) {
	svc, _, _, _ := newTaskFixture(t)
	err := svc.DeleteTask(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
