package persistence

import (
	"context"
	"testing"

	"github.com/gharzo/engine/internal/domain/roomswitch"
	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, tenantID uuid.UUID) *roomswitch.RoomSwitchRequest {
	t.Helper()
	r, err := roomswitch.NewRoomSwitchRequest(tenantID, uuid.New(), "R1", "B1", "R2", "B3")
	require.NoError(t, err)
	return r
}

func TestGormRoomSwitchRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRoomSwitchRepository(db)
	ctx := context.Background()

	r := newRequest(t, uuid.New())
	require.NoError(t, repo.Save(ctx, r))

	found, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.TenantID, found.TenantID)
	assert.Equal(t, "R2", found.RequestedRoomID)
	assert.Equal(t, "B3", found.RequestedBedID)
	assert.Equal(t, roomswitch.StatusPending, found.Status)
	assert.Nil(t, found.ResponseDate)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormRoomSwitchRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRoomSwitchRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	mine := newRequest(t, tenantID)
	require.NoError(t, repo.Save(ctx, mine))

	other := newRequest(t, uuid.New())
	require.NoError(t, other.Reject(uuid.New(), "bed under maintenance"))
	require.NoError(t, repo.Save(ctx, other))

	t.Run("filters by tenant", func(t *testing.T) {
		list, err := repo.FindAll(ctx, roomswitch.Filter{TenantID: &tenantID})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, mine.ID, list[0].ID)
	})

	t.Run("filters by status", func(t *testing.T) {
		rejected := roomswitch.StatusRejected
		list, err := repo.FindAll(ctx, roomswitch.Filter{Status: &rejected})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "bed under maintenance", list[0].Reason)
	})
}

func TestGormRoomSwitchRepository_ExistsPendingForTarget(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRoomSwitchRepository(db)
	ctx := context.Background()

	r := newRequest(t, uuid.New())
	require.NoError(t, repo.Save(ctx, r))

	exists, err := repo.ExistsPendingForTarget(ctx, r.TenantID, "R2", "B3")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsPendingForTarget(ctx, r.TenantID, "R2", "B4")
	require.NoError(t, err)
	assert.False(t, exists)

	// A settled request no longer blocks resubmission
	require.NoError(t, r.Reject(uuid.New(), "not available"))
	require.NoError(t, repo.SaveWithLock(ctx, r))

	exists, err = repo.ExistsPendingForTarget(ctx, r.TenantID, "R2", "B3")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormRoomSwitchRepository_Summary(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRoomSwitchRepository(db)
	ctx := context.Background()

	pending := newRequest(t, uuid.New())
	require.NoError(t, repo.Save(ctx, pending))

	approved := newRequest(t, uuid.New())
	require.NoError(t, approved.Approve(uuid.New()))
	require.NoError(t, repo.Save(ctx, approved))

	rejected := newRequest(t, uuid.New())
	require.NoError(t, rejected.Reject(uuid.New(), "no"))
	require.NoError(t, repo.Save(ctx, rejected))

	summary, err := repo.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Pending)
	assert.Equal(t, int64(1), summary.Approved)
	assert.Equal(t, int64(1), summary.Rejected)
}

func TestGormRoomSwitchRepository_SaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRoomSwitchRepository(db)
	ctx := context.Background()

	r := newRequest(t, uuid.New())
	require.NoError(t, repo.Save(ctx, r))

	stale, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	current, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)

	require.NoError(t, current.Approve(uuid.New()))
	require.NoError(t, repo.SaveWithLock(ctx, current))

	require.NoError(t, stale.Reject(uuid.New(), "too slow"))
	err = repo.SaveWithLock(ctx, stale)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	reloaded, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, roomswitch.StatusApproved, reloaded.Status)
}
