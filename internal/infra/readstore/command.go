package readstore

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	sqlc "shareit/internal/infra/sqlc/generated"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/shared"

	"github.com/google/uuid"
)

type CommandReadQueries interface {
	FindUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Users, error)
	FindUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Users, error)
	FindItemByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Items, error)
	FindBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	ExistsCompletedBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.ExistsCompletedBookingParams) (bool, error)
}

// CommandReadStore loads write-side snapshots. Inside a transaction it is bound to the tx.
type CommandReadStore struct {
	queries CommandReadQueries
	db      sqlc.DBTX
}

func NewCommandReadStore(queries CommandReadQueries, db sqlc.DBTX) *CommandReadStore {
	return &CommandReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CommandReadStore) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	row, err := r.queries.FindUserByID(ctx, r.db, id)
	if err != nil {
		return nil, lookupErr("user", err)
	}
	return toUserSnapshot(row), nil
}

func (r *CommandReadStore) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	row, err := r.queries.FindUserByEmail(ctx, r.db, email)
	if err != nil {
		return nil, lookupErr("user", err)
	}
	return toUserSnapshot(row), nil
}

func (r *CommandReadStore) ItemByID(ctx context.Context, id uuid.UUID) (*shared.ItemSnapshot, error) {
	row, err := r.queries.FindItemByID(ctx, r.db, id)
	if err != nil {
		return nil, lookupErr("item", err)
	}
	return &shared.ItemSnapshot{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Name:        row.Name,
		Description: row.Description,
		Available:   row.Available,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func (r *CommandReadStore) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row, err := r.queries.FindBookingByID(ctx, r.db, id)
	if err != nil {
		return nil, lookupErr("booking", err)
	}
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking row "+row.ID.String(), err)
	}
	return &shared.BookingSnapshot{
		ID:        row.ID,
		ItemID:    row.ItemID,
		BookerID:  row.BookerID,
		Status:    status,
		Start:     pgconv.TimeFromPgtype(row.StartTime),
		End:       pgconv.TimeFromPgtype(row.EndTime),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func (r *CommandReadStore) HasCompletedBooking(ctx context.Context, itemID, userID uuid.UUID, now time.Time) (bool, error) {
	ok, err := r.queries.ExistsCompletedBooking(ctx, r.db, sqlc.ExistsCompletedBookingParams{
		ItemID:   itemID,
		BookerID: userID,
		EndTime:  pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check completed booking", err)
	}
	return ok, nil
}

func lookupErr(entity string, err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(entity+" not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr("failed to find "+entity, err)
}

func toUserSnapshot(row sqlc.Users) *shared.UserSnapshot {
	return &shared.UserSnapshot{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		LastLogin:    pgconv.TimePtrFromPgtype(row.LastLogin),
		IsActive:     row.IsActive,
		CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:    pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
