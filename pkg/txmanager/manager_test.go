package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
)

func setupManager(t *testing.T, opts ...Option) (*Manager, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewTransactionManager(dbmetrics.Wrap(db, nil, "test"), opts...), mock
}

func TestDo_Commit(t *testing.T) {
	mgr, mock := setupManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		require.True(t, dbmetrics.IsInTransaction(ctx))
		tx, _ := dbmetrics.GetTx(ctx)
		_, err := tx.ExecContext(ctx, "INSERT INTO bookings (title) VALUES ($1)", "sync")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollbackOnError(t *testing.T) {
	mgr, mock := setupManager(t)
	fnErr := errors.New("room conflict")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_BeginError(t *testing.T) {
	mgr, mock := setupManager(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err := mgr.Do(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrBeginTx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	mgr, mock := setupManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		outer, _ := dbmetrics.GetTx(ctx)
		return mgr.Do(ctx, func(inner context.Context) error {
			calls++
			innerTx, _ := dbmetrics.GetTx(inner)
			assert.Same(t, outer, innerTx)
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	mgr, mock := setupManager(t, WithMaxRetries(2))

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: pgerr.CodeSerializationFailure})
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	mgr, mock := setupManager(t, WithMaxRetries(1))

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return &pq.Error{Code: pgerr.CodeDeadlockDetected}
	})

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.True(t, pgerr.IsSerializationFailure(err))
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_DoesNotRetryBusinessErrors(t *testing.T) {
	mgr, mock := setupManager(t)
	fnErr := errors.New("insufficient capacity")

	mock.ExpectBegin()
	mock.ExpectRollback()

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.Equal(t, 1, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoReadOnly_MarksContextReadOnly(t *testing.T) {
	mgr, mock := setupManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := mgr.DoReadOnly(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		assert.True(t, dbmetrics.IsReadOnly(ctx))
		assert.False(t, dbmetrics.CanLockRows(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_AllowsRowLocks(t *testing.T) {
	mgr, mock := setupManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.CanLockRows(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
