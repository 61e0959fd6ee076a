package roomswitch

import (
	"testing"

	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T) *RoomSwitchRequest {
	t.Helper()
	r, err := NewRoomSwitchRequest(uuid.New(), uuid.New(), "R3", "A", "R7", "B")
	require.NoError(t, err)
	r.ClearDomainEvents()
	return r
}

func TestNewRoomSwitchRequest(t *testing.T) {
	t.Run("creates pending request with request date", func(t *testing.T) {
		r, err := NewRoomSwitchRequest(uuid.New(), uuid.New(), "R3", "A", "R7", "B")
		require.NoError(t, err)

		assert.Equal(t, StatusPending, r.Status)
		assert.False(t, r.RequestDate.IsZero())
		assert.Nil(t, r.ResponseDate)
		require.Len(t, r.GetDomainEvents(), 1)
		assert.Equal(t, "RoomSwitchSubmitted", r.GetDomainEvents()[0].EventType())
	})

	t.Run("same bed target is invalid", func(t *testing.T) {
		_, err := NewRoomSwitchRequest(uuid.New(), uuid.New(), "R3", "A", "R3", "A")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TARGET", domainErr.Code)
	})

	t.Run("same bed id in a different room is a valid target", func(t *testing.T) {
		_, err := NewRoomSwitchRequest(uuid.New(), uuid.New(), "R3", "A", "R7", "A")
		assert.NoError(t, err)
	})

	t.Run("missing identifiers are rejected", func(t *testing.T) {
		_, err := NewRoomSwitchRequest(uuid.New(), uuid.New(), "", "A", "R7", "B")
		assert.Error(t, err)
		_, err = NewRoomSwitchRequest(uuid.New(), uuid.New(), "R3", "A", "R7", "")
		assert.Error(t, err)
		_, err = NewRoomSwitchRequest(uuid.Nil, uuid.New(), "R3", "A", "R7", "B")
		assert.Error(t, err)
	})
}

func TestRoomSwitchRequest_Approve(t *testing.T) {
	t.Run("pending to approved stamps response date", func(t *testing.T) {
		r := newTestRequest(t)
		actor := uuid.New()

		require.NoError(t, r.Approve(actor))

		assert.Equal(t, StatusApproved, r.Status)
		require.NotNil(t, r.ResponseDate)
		require.NotNil(t, r.RespondedBy)
		assert.Equal(t, actor, *r.RespondedBy)
	})

	t.Run("terminal states always fail with InvalidTransition", func(t *testing.T) {
		for _, status := range []Status{StatusApproved, StatusRejected} {
			r := newTestRequest(t)
			r.Status = status
			before := *r

			err := r.Approve(uuid.New())
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
			assert.Equal(t, before.Status, r.Status)
			assert.Equal(t, before.Version, r.Version)
		}
	})
}

func TestRoomSwitchRequest_RevertApproval(t *testing.T) {
	t.Run("returns approved request to pending", func(t *testing.T) {
		r := newTestRequest(t)
		require.NoError(t, r.Approve(uuid.New()))

		require.NoError(t, r.RevertApproval())

		assert.Equal(t, StatusPending, r.Status)
		assert.Nil(t, r.ResponseDate)
		assert.Nil(t, r.RespondedBy)
	})

	t.Run("only approved requests can be reverted", func(t *testing.T) {
		r := newTestRequest(t)
		assert.Error(t, r.RevertApproval())
	})
}

func TestRoomSwitchRequest_Reject(t *testing.T) {
	t.Run("pending to rejected with reason", func(t *testing.T) {
		r := newTestRequest(t)

		require.NoError(t, r.Reject(uuid.New(), "bed reserved for new admission"))

		assert.Equal(t, StatusRejected, r.Status)
		assert.Equal(t, "bed reserved for new admission", r.Reason)
		assert.NotNil(t, r.ResponseDate)
	})

	t.Run("requires non-empty reason", func(t *testing.T) {
		r := newTestRequest(t)
		err := r.Reject(uuid.New(), "")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
		assert.Equal(t, StatusPending, r.Status)
	})

	t.Run("terminal states fail with InvalidTransition", func(t *testing.T) {
		r := newTestRequest(t)
		require.NoError(t, r.Approve(uuid.New()))
		assert.Error(t, r.Reject(uuid.New(), "too late"))
	})
}

func TestRoomSwitchRequest_ResponseDateInvariant(t *testing.T) {
	// responseDate is set iff status != pending
	r := newTestRequest(t)
	assert.Nil(t, r.ResponseDate)

	require.NoError(t, r.Approve(uuid.New()))
	assert.NotNil(t, r.ResponseDate)

	require.NoError(t, r.RevertApproval())
	assert.Nil(t, r.ResponseDate)

	require.NoError(t, r.Reject(uuid.New(), "duplicate"))
	assert.NotNil(t, r.ResponseDate)
}
