package admission

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

func TestResolveTxError(t *testing.T) {
	w := window(9, 0, 10, 0)

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, ResolveTxError(nil, roomID, w))
	})

	t.Run("exclusion violation becomes conflict", func(t *testing.T) {
		err := fmt.Errorf("%w: create booking: %w", ErrInternal, &pq.Error{Code: pgerr.CodeExclusionViolation})

		resolved := ResolveTxError(err, roomID, w)

		var conflict *RoomConflictError
		require.True(t, errors.As(resolved, &conflict))
		assert.Empty(t, conflict.Conflicts)
		assert.Equal(t, roomID, conflict.RoomID)
	})

	t.Run("exhausted retries become conflict", func(t *testing.T) {
		err := fmt.Errorf("%w: %w", txmanager.ErrRetriesExhausted, &pq.Error{Code: pgerr.CodeSerializationFailure})

		assert.ErrorIs(t, ResolveTxError(err, roomID, w), ErrConflict)
	})

	t.Run("business errors pass through", func(t *testing.T) {
		capacity := &CapacityError{EquipmentID: 1, Requested: 1, Total: 0}

		assert.Same(t, capacity, ResolveTxError(capacity, roomID, w))
		assert.ErrorIs(t, ResolveTxError(ErrCapacityExceeded, roomID, w), ErrCapacityExceeded)
	})

	t.Run("foreign key violation becomes not found", func(t *testing.T) {
		err := &pq.Error{Code: pgerr.CodeForeignKeyViolation}

		assert.ErrorIs(t, ResolveTxError(err, roomID, w), ErrNotFound)
	})

	t.Run("unknown errors are kept", func(t *testing.T) {
		boom := errors.New("boom")

		assert.Same(t, boom, ResolveTxError(boom, roomID, w))
	})
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, metrics.OutcomeAdmitted, Outcome(nil))
	assert.Equal(t, metrics.OutcomeInvalidArgument, Outcome(ErrInvalidWindow))
	assert.Equal(t, metrics.OutcomeNotFound, Outcome(ErrRoomNotFound))
	assert.Equal(t, metrics.OutcomeConflict, Outcome(&RoomConflictError{}))
	assert.Equal(t, metrics.OutcomeInsufficientCapacity, Outcome(&CapacityError{}))
	assert.Equal(t, metrics.OutcomeError, Outcome(errors.New("db down")))
}
