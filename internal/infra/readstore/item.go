package readstore

import (
	"context"
	"time"

	"shareit/internal/infra"
	sqlc "shareit/internal/infra/sqlc/generated"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ItemReadQueries interface {
	FindItemByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Items, error)
	ListItemsByOwner(ctx context.Context, db sqlc.DBTX, ownerID uuid.UUID) ([]sqlc.Items, error)
	SearchAvailableItems(ctx context.Context, db sqlc.DBTX, text string) ([]sqlc.Items, error)
	GetLastBookingStart(ctx context.Context, db sqlc.DBTX, arg sqlc.GetLastBookingStartParams) (pgtype.Timestamptz, error)
	GetNextBookingStart(ctx context.Context, db sqlc.DBTX, arg sqlc.GetNextBookingStartParams) (pgtype.Timestamptz, error)
}

type ItemReadStore struct {
	queries ItemReadQueries
	db      sqlc.DBTX
}

func NewItemReadStore(queries ItemReadQueries, db sqlc.DBTX) *ItemReadStore {
	return &ItemReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ItemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	row, err := r.queries.FindItemByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return toItemView(row), nil
}

func (r *ItemReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.ItemView, error) {
	rows, err := r.queries.ListItemsByOwner(ctx, r.db, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items by owner", err)
	}
	return mapItems(rows), nil
}

func (r *ItemReadStore) SearchAvailable(ctx context.Context, text string) ([]*queries.ItemView, error) {
	rows, err := r.queries.SearchAvailableItems(ctx, r.db, text)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search items", err)
	}
	return mapItems(rows), nil
}

// LastBookingStart returns nil when the item has no finished booking.
func (r *ItemReadStore) LastBookingStart(ctx context.Context, itemID uuid.UUID, now time.Time) (*time.Time, error) {
	ts, err := r.queries.GetLastBookingStart(ctx, r.db, sqlc.GetLastBookingStartParams{
		ItemID:  itemID,
		EndTime: pgconv.TimeToPgtype(now),
	})
	return optionalTime(ts, err, "failed to get last booking")
}

func (r *ItemReadStore) NextBookingStart(ctx context.Context, itemID uuid.UUID, now time.Time) (*time.Time, error) {
	ts, err := r.queries.GetNextBookingStart(ctx, r.db, sqlc.GetNextBookingStartParams{
		ItemID:    itemID,
		StartTime: pgconv.TimeToPgtype(now),
	})
	return optionalTime(ts, err, "failed to get next booking")
}

func optionalTime(ts pgtype.Timestamptz, err error, msg string) (*time.Time, error) {
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(msg, err)
	}
	return pgconv.TimePtrFromPgtype(ts), nil
}

func toItemView(row sqlc.Items) *queries.ItemView {
	return &queries.ItemView{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Name:        row.Name,
		Description: row.Description,
		Available:   row.Available,
	}
}

func mapItems(rows []sqlc.Items) []*queries.ItemView {
	result := make([]*queries.ItemView, len(rows))
	for i, row := range rows {
		result[i] = toItemView(row)
	}
	return result
}
