package shared

import (
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"

	"github.com/google/uuid"
)

// Write-side snapshots keep commands independent of query views.
type UserSnapshot struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	LastLogin    *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *UserSnapshot) ToDomain() *user.User {
	return user.Reconstruct(s.ID, s.Name, s.Email, s.PasswordHash, s.LastLogin, s.IsActive, s.CreatedAt, s.UpdatedAt)
}

type ItemSnapshot struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s *ItemSnapshot) ToDomain() *item.Item {
	return item.Reconstruct(s.ID, s.OwnerID, s.Name, s.Description, s.Available, s.CreatedAt, s.UpdatedAt)
}

type BookingSnapshot struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	BookerID  uuid.UUID
	Status    booking.Status
	Start     time.Time
	End       time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *BookingSnapshot) ToDomain() *booking.Booking {
	return booking.Reconstruct(s.ID, s.ItemID, s.BookerID, s.Status, s.Start, s.End, s.CreatedAt, s.UpdatedAt)
}

const (
	IdempotencyProcessing = "PROCESSING"
	IdempotencyCompleted  = "COMPLETED"
)

type IdempotencyRecord struct {
	Status      string     `json:"status"`
	RequestHash string     `json:"requestHash"`
	BookingID   *uuid.UUID `json:"bookingId,omitempty"`
}
