package readstore

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	sqlc "shareit/internal/infra/sqlc/generated"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const dialectPostgres = "postgres"

const (
	colBookingID     = "b.id"
	colBookingStatus = "b.status"
	colBookingStart  = "b.start_time"
	colBookingEnd    = "b.end_time"
	colBookerID      = "b.booker_id"
	colItemID        = "i.id"
	colItemName      = "i.name"
	colItemOwnerID   = "i.owner_id"
)

type BookingReadQueries interface {
	GetBookingViewByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetBookingViewByIDRow, error)
}

// BookingReadStore serves the state-filtered lists with goqu-built SQL and single lookups with sqlc.
type BookingReadStore struct {
	queries BookingReadQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingReadQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking view by id", err)
	}
	return &queries.BookingView{
		ID:          row.ID,
		Item:        queries.BookingItemView{ID: row.ItemID, Name: row.ItemName},
		Booker:      queries.BookingBookerView{ID: row.BookerID},
		ItemOwnerID: row.ItemOwnerID,
		Status:      row.Status,
		Start:       pgconv.TimeFromPgtype(row.StartTime),
		End:         pgconv.TimeFromPgtype(row.EndTime),
	}, nil
}

func (r *BookingReadStore) ListAll(ctx context.Context, p queries.Party) ([]*queries.BookingView, error) {
	return r.list(ctx, p)
}

func (r *BookingReadStore) ListCurrent(ctx context.Context, p queries.Party, now time.Time) ([]*queries.BookingView, error) {
	return r.list(ctx, p,
		goqu.I(colBookingStart).Lt(now),
		goqu.I(colBookingEnd).Gt(now),
	)
}

func (r *BookingReadStore) ListPast(ctx context.Context, p queries.Party, now time.Time) ([]*queries.BookingView, error) {
	return r.list(ctx, p, goqu.I(colBookingEnd).Lt(now))
}

func (r *BookingReadStore) ListFuture(ctx context.Context, p queries.Party, now time.Time) ([]*queries.BookingView, error) {
	return r.list(ctx, p, goqu.I(colBookingStart).Gt(now))
}

func (r *BookingReadStore) ListByStatus(ctx context.Context, p queries.Party, status booking.Status) ([]*queries.BookingView, error) {
	return r.list(ctx, p, goqu.I(colBookingStatus).Eq(status.String()))
}

func (r *BookingReadStore) list(ctx context.Context, p queries.Party, filters ...exp.Expression) ([]*queries.BookingView, error) {
	sqlQuery, args, err := buildListQuery(p, filters...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list query", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	result := make([]*queries.BookingView, 0)
	for rows.Next() {
		var (
			v          queries.BookingView
			start, end pgtype.Timestamptz
		)
		if err := rows.Scan(
			&v.ID,
			&v.Status,
			&start,
			&end,
			&v.Booker.ID,
			&v.Item.ID,
			&v.Item.Name,
			&v.ItemOwnerID,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		v.Start = pgconv.TimeFromPgtype(start)
		v.End = pgconv.TimeFromPgtype(end)
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}

// buildListQuery filters by booker or by item owner and orders by start DESC, id DESC.
func buildListQuery(p queries.Party, filters ...exp.Expression) (string, []any, error) {
	partyCol := colBookerID
	if p.AsOwner {
		partyCol = colItemOwnerID
	}

	where := make([]exp.Expression, 0, len(filters)+1)
	where = append(where, goqu.I(partyCol).Eq(p.UserID.String()))
	where = append(where, filters...)

	return goqu.Dialect(dialectPostgres).
		From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I(colItemID).Eq(goqu.I("b.item_id")))).
		Select(
			goqu.I(colBookingID),
			goqu.I(colBookingStatus),
			goqu.I(colBookingStart),
			goqu.I(colBookingEnd),
			goqu.I(colBookerID),
			goqu.I(colItemID).As("item_id"),
			goqu.I(colItemName).As("item_name"),
			goqu.I(colItemOwnerID).As("item_owner_id"),
		).
		Where(goqu.And(where...)).
		Order(goqu.I(colBookingStart).Desc(), goqu.I(colBookingID).Desc()).
		Prepared(true).
		ToSQL()
}
