package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/google/uuid"
)

const completeAttempts = 2

var (
	ErrIdempotencyInProgress = errs.Conflict("a request with this idempotency key is still in progress")
	ErrIdempotencyMismatch   = errs.Conflict("idempotency key was already used with a different request")
	ErrIdempotencyCheck      = errs.New("idempotency check failed")
)

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	Create(ctx context.Context, req reqdto.CreateBookingRequest, bookerID uuid.UUID, idempotencyKey string) (*CreateBookingResult, error)
	Decide(ctx context.Context, bookingID, actorID uuid.UUID, approve bool) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow         shared.UnitOfWork
	idempotency IdempotencyStore
	clock       clock.Clock
	recorder    Recorder
}

// NewBookingCommands accepts a nil idempotency store; keys are then ignored.
func NewBookingCommands(uow shared.UnitOfWork, idempotency IdempotencyStore, clk clock.Clock, recorder Recorder) BookingCommands {
	return &bookingCommandsImpl{
		uow:         uow,
		idempotency: idempotency,
		clock:       clk,
		recorder:    recorder,
	}
}

func (uc *bookingCommandsImpl) Create(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	bookerID uuid.UUID,
	idempotencyKey string,
) (*CreateBookingResult, error) {
	if idempotencyKey == "" || uc.idempotency == nil {
		view, err := uc.create(ctx, req, bookerID)
		if err != nil {
			return nil, err
		}
		return &CreateBookingResult{Booking: view}, nil
	}

	requestHash := calculateRequestHash(req)

	existing, claimed, err := uc.idempotency.Claim(ctx, bookerID, idempotencyKey, requestHash)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheck)
	}
	if !claimed {
		view, err := uc.replay(ctx, existing, requestHash)
		if err != nil {
			return nil, err
		}
		return &CreateBookingResult{Booking: view, IsReplayed: true}, nil
	}

	view, err := uc.create(ctx, req, bookerID)
	if err != nil {
		if releaseErr := uc.idempotency.Release(ctx, bookerID, idempotencyKey); releaseErr != nil {
			slog.Warn("failed to release idempotency key", "user_id", bookerID, "error", releaseErr.Error())
		}
		return nil, err
	}

	uc.completeKey(ctx, bookerID, idempotencyKey, requestHash, view.ID)
	return &CreateBookingResult{Booking: view}, nil
}

// completeKey is best effort: the booking is already committed. A key left in
// progress answers retries with 409 until its TTL expires.
func (uc *bookingCommandsImpl) completeKey(ctx context.Context, bookerID uuid.UUID, key, requestHash string, bookingID uuid.UUID) {
	var err error
	for attempt := 1; attempt <= completeAttempts; attempt++ {
		if err = uc.idempotency.Complete(ctx, bookerID, key, requestHash, bookingID); err == nil {
			return
		}
		slog.Warn("failed to complete idempotency key",
			"booking_id", bookingID,
			"attempt", attempt,
			"error", err.Error())
	}
	slog.Error("idempotency key left in progress", "booking_id", bookingID, "user_id", bookerID)
}

func (uc *bookingCommandsImpl) replay(ctx context.Context, rec *shared.IdempotencyRecord, requestHash string) (*queries.BookingView, error) {
	if rec.RequestHash != requestHash {
		return nil, ErrIdempotencyMismatch
	}
	if rec.Status != shared.IdempotencyCompleted || rec.BookingID == nil {
		return nil, ErrIdempotencyInProgress
	}

	reads := uc.uow.CommandReads()
	snap, err := reads.BookingByID(ctx, *rec.BookingID)
	if err != nil {
		return nil, notFoundAs(err, booking.ErrBookingNotFound)
	}
	itSnap, err := reads.ItemByID(ctx, snap.ItemID)
	if err != nil {
		return nil, notFoundAs(err, ErrItemNotFound)
	}
	return toBookingView(snap.ToDomain(), itSnap), nil
}

func (uc *bookingCommandsImpl) create(ctx context.Context, req reqdto.CreateBookingRequest, bookerID uuid.UUID) (*queries.BookingView, error) {
	var view *queries.BookingView
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()
		if _, err := reads.UserByID(ctx, bookerID); err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		itSnap, err := reads.ItemByID(ctx, req.ItemID)
		if err != nil {
			return notFoundAs(err, ErrItemNotFound)
		}

		b, err := booking.NewBooking(itSnap.ToDomain(), bookerID, req.Start, req.End, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}

		view = toBookingView(b, itSnap)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.BookingCreated()
	slog.Info("booking created", "booking_id", view.ID, "item_id", view.Item.ID, "booker_id", bookerID)
	return view, nil
}

func (uc *bookingCommandsImpl) Decide(ctx context.Context, bookingID, actorID uuid.UUID, approve bool) (*queries.BookingView, error) {
	var view *queries.BookingView
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()
		snap, err := reads.BookingByID(ctx, bookingID)
		if err != nil {
			return notFoundAs(err, booking.ErrBookingNotFound)
		}
		itSnap, err := reads.ItemByID(ctx, snap.ItemID)
		if err != nil {
			return notFoundAs(err, ErrItemNotFound)
		}

		b := snap.ToDomain()
		if err := b.Decide(actorID, itSnap.OwnerID, approve, uc.clock.Now()); err != nil {
			return err
		}

		ok, err := tx.Bookings().Decide(ctx, b)
		if err != nil {
			return err
		}
		if !ok {
			return booking.ErrAlreadyDecided
		}

		view = toBookingView(b, itSnap)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.BookingDecided(view.Status)
	slog.Info("booking decided", "booking_id", view.ID, "status", view.Status, "owner_id", actorID)
	return view, nil
}

func toBookingView(b *booking.Booking, it *shared.ItemSnapshot) *queries.BookingView {
	return &queries.BookingView{
		ID:          b.ID(),
		Item:        queries.BookingItemView{ID: it.ID, Name: it.Name},
		Booker:      queries.BookingBookerView{ID: b.BookerID()},
		ItemOwnerID: it.OwnerID,
		Status:      b.Status().String(),
		Start:       b.Start(),
		End:         b.End(),
	}
}

func calculateRequestHash(req reqdto.CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
