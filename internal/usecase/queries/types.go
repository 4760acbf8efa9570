package queries

//go:generate mockgen -destination=../../testutil/mock/queries/queries.go -package=queriesmock shareit/internal/usecase/queries BookingQueries,ItemQueries,UserQueries

import (
	"time"

	"github.com/google/uuid"
)

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type BookingItemView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BookingBookerView struct {
	ID uuid.UUID `json:"id"`
}

type BookingView struct {
	ID          uuid.UUID         `json:"id"`
	Item        BookingItemView   `json:"item"`
	Booker      BookingBookerView `json:"booker"`
	ItemOwnerID uuid.UUID         `json:"-"`
	Status      string            `json:"status"`
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
}

type CommentView struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"-"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemView struct {
	ID          uuid.UUID      `json:"id"`
	OwnerID     uuid.UUID      `json:"ownerId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Available   bool           `json:"available"`
	LastBooking *time.Time     `json:"lastBooking"`
	NextBooking *time.Time     `json:"nextBooking"`
	Comments    []*CommentView `json:"comments"`
}
