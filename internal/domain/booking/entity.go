package booking

import (
	"time"

	"shareit/internal/domain/item"

	"github.com/google/uuid"
)

type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	status    Status
	start     time.Time
	end       time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking validates a booking request against the item and returns a WAITING booking.
// Checks run in a fixed order: availability, self-booking, then the period.
// Overlap with other bookings of the same item is not checked.
func NewBooking(it *item.Item, bookerID uuid.UUID, start, end, now time.Time) (*Booking, error) {
	if !it.Available() {
		return nil, ErrItemUnavailable
	}
	if it.IsOwnedBy(bookerID) {
		return nil, ErrOwnerBooking
	}
	if start.IsZero() || end.IsZero() {
		return nil, ErrMissingPeriod
	}
	if !start.Before(end) {
		return nil, ErrInvalidPeriod
	}

	return &Booking{
		id:        uuid.New(),
		itemID:    it.ID(),
		bookerID:  bookerID,
		status:    StatusWaiting,
		start:     start,
		end:       end,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(id, itemID, bookerID uuid.UUID, status Status, start, end, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		status:    status,
		start:     start,
		end:       end,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Decide moves a WAITING booking to APPROVED or REJECTED.
// itemOwnerID is the owner of the booked item; only that user may decide.
func (b *Booking) Decide(actorID, itemOwnerID uuid.UUID, approve bool, now time.Time) error {
	if actorID != itemOwnerID {
		return ErrNotItemOwner
	}
	if b.status != StatusWaiting {
		return ErrAlreadyDecided
	}

	if approve {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) ItemID() uuid.UUID    { return b.itemID }
func (b *Booking) BookerID() uuid.UUID  { return b.bookerID }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Start() time.Time     { return b.start }
func (b *Booking) End() time.Time       { return b.end }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// CanRead allows the booker and the item owner.
func CanRead(actorID, bookerID, itemOwnerID uuid.UUID) error {
	if actorID == bookerID || actorID == itemOwnerID {
		return nil
	}
	return ErrAccessDenied
}

// IsCompletedBy reports whether the booking qualifies userID to comment on its item.
func IsCompletedBy(bookerID uuid.UUID, status Status, end time.Time, userID uuid.UUID, now time.Time) bool {
	return bookerID == userID && status == StatusApproved && end.Before(now)
}
