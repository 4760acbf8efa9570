package shared

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Tx repositories are bound to the running transaction.
type Tx interface {
	Bookings() BookingRepository
	Items() ItemRepository
	Users() UserRepository
	Comments() CommentRepository
	Reads() CommandReads
}

type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	ItemByID(ctx context.Context, id uuid.UUID) (*ItemSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	HasCompletedBooking(ctx context.Context, itemID, userID uuid.UUID, now time.Time) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// Decide persists the new status only while the row is still WAITING.
	// It reports false when another decision got there first.
	Decide(ctx context.Context, b *booking.Booking) (bool, error)
}

type ItemRepository interface {
	Create(ctx context.Context, it *item.Item) error
	Update(ctx context.Context, it *item.Item) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateProfile(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) error
}
