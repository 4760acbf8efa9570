//go:build unit

package repository

import (
	"context"
	"testing"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	sqlc "shareit/internal/infra/sqlc/generated"
	"shareit/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingWriteQueries struct {
	mock.Mock
}

func (m *MockBookingWriteQueries) CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) (uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockBookingWriteQueries) DecideBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.DecideBookingParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestBookingRepository_Create(t *testing.T) {
	b := builder.NewBookingBuilder().BuildDomain()

	tests := []struct {
		name     string
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "unknown item", mockErr: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
		{name: "database error", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockBookingWriteQueries)
			mockQueries.On("CreateBooking", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateBookingParams) bool {
				return p.ID == b.ID() && p.Status == booking.StatusWaiting.String()
			})).Return(b.ID(), tt.mockErr)

			err := NewBookingRepository(mockQueries, nil).Create(context.Background(), b)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestBookingRepository_Decide(t *testing.T) {
	b := builder.NewBookingBuilder().WithStatus(booking.StatusApproved).BuildDomain()

	tests := []struct {
		name    string
		rows    int64
		mockErr error
		want    bool
		wantErr bool
	}{
		{name: "swapped", rows: 1, want: true},
		{name: "already decided", rows: 0, want: false},
		{name: "database error", mockErr: assert.AnError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockBookingWriteQueries)
			mockQueries.On("DecideBooking", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.DecideBookingParams) bool {
				return p.ID == b.ID() && p.Status == booking.StatusApproved.String()
			})).Return(tt.rows, tt.mockErr)

			ok, err := NewBookingRepository(mockQueries, nil).Decide(context.Background(), b)

			if tt.wantErr {
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, ok)
			mockQueries.AssertExpectations(t)
		})
	}
}
