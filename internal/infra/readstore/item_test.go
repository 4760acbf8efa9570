//go:build unit

package readstore

import (
	"context"
	"testing"
	"time"

	"shareit/internal/infra"
	sqlc "shareit/internal/infra/sqlc/generated"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockItemReadQueries struct {
	mock.Mock
}

func (m *MockItemReadQueries) FindItemByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Items, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Items), args.Error(1)
}

func (m *MockItemReadQueries) ListItemsByOwner(ctx context.Context, db sqlc.DBTX, ownerID uuid.UUID) ([]sqlc.Items, error) {
	args := m.Called(ctx, db, ownerID)
	return args.Get(0).([]sqlc.Items), args.Error(1)
}

func (m *MockItemReadQueries) SearchAvailableItems(ctx context.Context, db sqlc.DBTX, text string) ([]sqlc.Items, error) {
	args := m.Called(ctx, db, text)
	return args.Get(0).([]sqlc.Items), args.Error(1)
}

func (m *MockItemReadQueries) GetLastBookingStart(ctx context.Context, db sqlc.DBTX, arg sqlc.GetLastBookingStartParams) (pgtype.Timestamptz, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(pgtype.Timestamptz), args.Error(1)
}

func (m *MockItemReadQueries) GetNextBookingStart(ctx context.Context, db sqlc.DBTX, arg sqlc.GetNextBookingStartParams) (pgtype.Timestamptz, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(pgtype.Timestamptz), args.Error(1)
}

func TestItemReadStore_FindByID(t *testing.T) {
	row := builder.NewItemBuilder().BuildInfra()

	t.Run("found", func(t *testing.T) {
		q := new(MockItemReadQueries)
		q.On("FindItemByID", mock.Anything, mock.Anything, row.ID).Return(row, nil)

		view, err := NewItemReadStore(q, nil).FindByID(context.Background(), row.ID)
		require.NoError(t, err)
		assert.Equal(t, row.Name, view.Name)
		assert.Equal(t, row.OwnerID, view.OwnerID)
	})

	t.Run("missing", func(t *testing.T) {
		q := new(MockItemReadQueries)
		q.On("FindItemByID", mock.Anything, mock.Anything, row.ID).Return(sqlc.Items{}, pgx.ErrNoRows)

		_, err := NewItemReadStore(q, nil).FindByID(context.Background(), row.ID)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestItemReadStore_BookingDates(t *testing.T) {
	itemID := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(-72 * time.Hour)

	t.Run("last booking found", func(t *testing.T) {
		q := new(MockItemReadQueries)
		q.On("GetLastBookingStart", mock.Anything, mock.Anything, sqlc.GetLastBookingStartParams{
			ItemID:  itemID,
			EndTime: pgconv.TimeToPgtype(now),
		}).Return(pgconv.TimeToPgtype(start), nil)

		got, err := NewItemReadStore(q, nil).LastBookingStart(context.Background(), itemID, now)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, start.Equal(*got))
	})

	t.Run("no next booking", func(t *testing.T) {
		q := new(MockItemReadQueries)
		q.On("GetNextBookingStart", mock.Anything, mock.Anything, mock.Anything).Return(pgtype.Timestamptz{}, pgx.ErrNoRows)

		got, err := NewItemReadStore(q, nil).NextBookingStart(context.Background(), itemID, now)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("database error", func(t *testing.T) {
		q := new(MockItemReadQueries)
		q.On("GetNextBookingStart", mock.Anything, mock.Anything, mock.Anything).Return(pgtype.Timestamptz{}, assert.AnError)

		_, err := NewItemReadStore(q, nil).NextBookingStart(context.Background(), itemID, now)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
