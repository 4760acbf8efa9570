package queries

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"

	"github.com/google/uuid"
)

// Party selects whose bookings a list covers: the booker's own, or those on items the user owns.
type Party struct {
	UserID  uuid.UUID
	AsOwner bool
}

// BookingReadStore lists are ordered by start DESC, id DESC.
type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListAll(ctx context.Context, p Party) ([]*BookingView, error)
	ListCurrent(ctx context.Context, p Party, now time.Time) ([]*BookingView, error)
	ListPast(ctx context.Context, p Party, now time.Time) ([]*BookingView, error)
	ListFuture(ctx context.Context, p Party, now time.Time) ([]*BookingView, error)
	ListByStatus(ctx context.Context, p Party, status booking.Status) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, bookingID, actorID uuid.UUID) (*BookingView, error)
	List(ctx context.Context, actorID uuid.UUID, state booking.State, asOwner bool) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	users    UserReadStore
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingReadStore, users UserReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		bookings: bookings,
		users:    users,
		clock:    clk,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, bookingID, actorID uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, err
	}

	if err := booking.CanRead(actorID, view.Booker.ID, view.ItemOwnerID); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, actorID uuid.UUID, state booking.State, asOwner bool) ([]*BookingView, error) {
	if _, err := q.users.FindByID(ctx, actorID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	p := Party{UserID: actorID, AsOwner: asOwner}
	now := q.clock.Now()

	var (
		views []*BookingView
		err   error
	)
	switch state {
	case booking.StateAll:
		views, err = q.bookings.ListAll(ctx, p)
	case booking.StateCurrent:
		views, err = q.bookings.ListCurrent(ctx, p, now)
	case booking.StatePast:
		views, err = q.bookings.ListPast(ctx, p, now)
	case booking.StateFuture:
		views, err = q.bookings.ListFuture(ctx, p, now)
	case booking.StateWaiting:
		views, err = q.bookings.ListByStatus(ctx, p, booking.StatusWaiting)
	case booking.StateRejected:
		views, err = q.bookings.ListByStatus(ctx, p, booking.StatusRejected)
	default:
		return nil, booking.UnknownStateError(string(state))
	}
	if err != nil {
		return nil, errs.Wrapf(err, "list %s bookings", state)
	}

	if views == nil {
		views = []*BookingView{}
	}
	return views, nil
}
