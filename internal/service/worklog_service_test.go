package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/orca-works/orca-crm/pkg/util"
)

func newWorklogFixture(t *testing.T) (*WorklogService, *fakeWorklogRepo, *fakeTicketRepo) {
	t.Helper()
	worklogs := newFakeWorklogRepo()
	tickets := newFakeTicketRepo()
	svc := NewWorklogService(WorklogDependencies{
		WorklogRepo: worklogs,
		TicketRepo:  tickets,
	})
	return svc, worklogs, tickets
}

func TestCreateWorklog(t *testing.T) {
	svc, _, tickets := newWorklogFixture(t)
	ticket := seedTicket(t, tickets)

	worklog, err := svc.CreateWorklog(context.Background(), ticket.ID, WorklogCreateInput{
		Description: "replaced fan",
		Hours:       1.5,
	})
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, worklog.TicketID)
	assert.Equal(t, 1.5, worklog.Hours)

	listed, err := svc.ListWorklogs(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestCreateWorklogRequiresDescription(t *testing.T) {
	svc, _, tickets := newWorklogFixture(t)
	ticket := seedTicket(t, tickets)

	_, err := svc.CreateWorklog(context.Background(), ticket.ID, WorklogCreateInput{Description: " "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestCreateWorklogRejectsNegativeHours(t *testing.T) {
	svc, _, tickets := newWorklogFixture(t)
	ticket := seedTicket(t, tickets)

	_, err := svc.CreateWorklog(context.Background(), ticket.ID, WorklogCreateInput{
		Description: "replaced fan",
		Hours:       -2,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestCreateWorklogUnknownTicket(t *testing.T) {
	svc, _, _ := newWorklogFixture(t)

	_, err := svc.CreateWorklog(context.Background(), 404, WorklogCreateInput{Description: "x"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
