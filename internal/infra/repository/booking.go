package repository

import (
	"context"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	sqlc "shareit/internal/infra/sqlc/generated"
	"shareit/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) (uuid.UUID, error)
	DecideBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.DecideBookingParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	params := sqlc.CreateBookingParams{
		ID:        b.ID(),
		ItemID:    b.ItemID(),
		BookerID:  b.BookerID(),
		Status:    b.Status().String(),
		StartTime: pgconv.TimeToPgtype(b.Start()),
		EndTime:   pgconv.TimeToPgtype(b.End()),
		CreatedAt: pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt: pgconv.TimeToPgtype(b.UpdatedAt()),
	}
	if _, err := r.queries.CreateBooking(ctx, r.db, params); err != nil {
		return wrapWriteErr("failed to create booking", err)
	}
	return nil
}

// Decide is a compare-and-swap on status = 'WAITING'.
func (r *BookingRepository) Decide(ctx context.Context, b *booking.Booking) (bool, error) {
	params := sqlc.DecideBookingParams{
		ID:        b.ID(),
		Status:    b.Status().String(),
		UpdatedAt: pgconv.TimeToPgtype(b.UpdatedAt()),
	}
	rows, err := r.queries.DecideBooking(ctx, r.db, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to decide booking", err)
	}
	return rows == 1, nil
}
