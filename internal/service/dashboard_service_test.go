package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
)

func TestSnapshot_ReflectsLatestCommand(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	snap, err := env.dashboard.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Requests, 5)
	assert.Len(t, snap.Departments, 6)
	assert.Len(t, snap.Categories, 5)
	assert.Nil(t, snap.Focused)
	assert.Equal(t, 3, snap.Counters.New)

	_, err = env.board.Accept(ctx, "R1")
	require.NoError(t, err)
	require.NoError(t, env.board.SetFocus(ctx, strPtr("R1")))

	snap, err = env.dashboard.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Counters.New)
	assert.Equal(t, 2, snap.Counters.InProgress)
	require.NotNil(t, snap.Focused)
	assert.Equal(t, domain.RequestStatusInProgress, snap.Focused.Status)
}

func TestSnapshot_IsACopy(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	snap, err := env.dashboard.Snapshot(ctx)
	require.NoError(t, err)
	snap.Requests[0].Status = domain.RequestStatusCompleted
	snap.Profile.Reputation = 0

	again, err := env.dashboard.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusNew, again.Requests[0].Status)
	assert.Equal(t, 2450, again.Profile.Reputation)
}
