package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlourhq/parlour-scheduler/internal/httperr"
	"github.com/parlourhq/parlour-scheduler/internal/models"
)

func TestCanTransition_Table(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

	allowed := map[Status]map[Status]bool{
		StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
		StatusConfirmed: {StatusCompleted: true, StatusCancelled: true},
		StatusCompleted: {},
		StatusCancelled: {},
	}

	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			if allowed[from][to] {
				assert.NoError(t, err, "%s -> %s should be allowed", from, to)
			} else {
				assert.Error(t, err, "%s -> %s should be rejected", from, to)
				assert.Equal(t, "invalid_state", httperr.BusinessCode(err))
			}
		}
	}
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusConfirmed.IsValid())
	assert.True(t, StatusCompleted.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, Status("scheduled").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestStatus_Occupies(t *testing.T) {
	assert.True(t, StatusPending.Occupies())
	assert.True(t, StatusConfirmed.Occupies())
	assert.False(t, StatusCompleted.Occupies())
	assert.False(t, StatusCancelled.Occupies())
}

func TestLifecycle_HappyPath(t *testing.T) {
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(InitialStatus())}

	require.NoError(t, Confirm(b, now))
	assert.Equal(t, string(StatusConfirmed), b.Status)
	require.NotNil(t, b.ConfirmedAt)
	assert.Equal(t, now, *b.ConfirmedAt)

	later := now.Add(time.Hour)
	require.NoError(t, Complete(b, later))
	assert.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.CompletedAt)
	assert.Equal(t, later, *b.CompletedAt)
}

func TestLifecycle_CancelledStaysCancelled(t *testing.T) {
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusPending)}

	require.NoError(t, Cancel(b, now))
	assert.Equal(t, string(StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)

	assert.Error(t, Confirm(b, now))
	assert.Error(t, Complete(b, now))
	assert.Equal(t, string(StatusCancelled), b.Status)
	assert.Nil(t, b.ConfirmedAt)
	assert.Nil(t, b.CompletedAt)
}

func TestLifecycle_CompletedIsTerminal(t *testing.T) {
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusConfirmed)}

	require.NoError(t, Complete(b, now))
	assert.Error(t, Cancel(b, now))
	assert.Equal(t, string(StatusCompleted), b.Status)
	assert.Nil(t, b.CancelledAt)
}
