//go:build unit || e2e

package builder

import (
	"time"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	sqlc "shareit/internal/infra/sqlc/generated"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingBuilder struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	ItemName    string
	ItemOwnerID uuid.UUID
	BookerID    uuid.UUID
	Status      booking.Status
	Start       time.Time
	End         time.Time
	CreatedAt   time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:          uuid.New(),
		ItemID:      uuid.New(),
		ItemName:    "Drill",
		ItemOwnerID: uuid.New(),
		BookerID:    uuid.New(),
		Status:      booking.StatusWaiting,
		Start:       start,
		End:         start.Add(24 * time.Hour),
		CreatedAt:   start.Add(-48 * time.Hour),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

// ForItem copies id, name and owner from an item builder.
func (b *BookingBuilder) ForItem(it *ItemBuilder) *BookingBuilder {
	b.ItemID = it.ID
	b.ItemName = it.Name
	b.ItemOwnerID = it.OwnerID
	return b
}

func (b *BookingBuilder) BookedBy(bookerID uuid.UUID) *BookingBuilder {
	b.BookerID = bookerID
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.Reconstruct(b.ID, b.ItemID, b.BookerID, b.Status, b.Start, b.End, b.CreatedAt, b.CreatedAt)
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:        b.ID,
		ItemID:    b.ItemID,
		BookerID:  b.BookerID,
		Status:    b.Status,
		Start:     b.Start,
		End:       b.End,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildInfra() sqlc.Bookings {
	return sqlc.Bookings{
		ID:        b.ID,
		ItemID:    b.ItemID,
		BookerID:  b.BookerID,
		Status:    b.Status.String(),
		StartTime: pgtype.Timestamptz{Time: b.Start, Valid: true},
		EndTime:   pgtype.Timestamptz{Time: b.End, Valid: true},
		CreatedAt: pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt: pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:          b.ID,
		Item:        queries.BookingItemView{ID: b.ItemID, Name: b.ItemName},
		Booker:      queries.BookingBookerView{ID: b.BookerID},
		ItemOwnerID: b.ItemOwnerID,
		Status:      b.Status.String(),
		Start:       b.Start,
		End:         b.End,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ItemID: b.ItemID,
		Start:  b.Start,
		End:    b.End,
	}
}
