package comment

import (
	"context"
	"time"

	"shareit/internal/domain/item"
	"shareit/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyText   = errs.BadRequest("comment text cannot be empty")
	ErrTextTooLong = errs.BadRequest("comment text exceeds maximum length")
	ErrOwnItem     = errs.Conflict("cannot comment on own item")
	ErrNotEligible = errs.BadRequest("only users with a completed approved booking can comment on the item")
)

type Comment struct {
	id         uuid.UUID
	itemID     uuid.UUID
	authorID   uuid.UUID
	authorName string
	text       Text
	createdAt  time.Time
}

// NewComment checks ownership and booking history before building the comment.
// The text must already be validated with NewText.
func NewComment(ctx context.Context, svc Services, it *item.Item, authorID uuid.UUID, authorName string, text Text) (*Comment, error) {
	if it.IsOwnedBy(authorID) {
		return nil, ErrOwnItem
	}

	now := svc.Clock.Now()
	ok, err := svc.Eligibility.HasCompletedBooking(ctx, it.ID(), authorID, now)
	if err != nil {
		return nil, errs.Wrap(err, "check comment eligibility")
	}
	if !ok {
		return nil, ErrNotEligible
	}

	return &Comment{
		id:         uuid.New(),
		itemID:     it.ID(),
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		createdAt:  now,
	}, nil
}

func Reconstruct(id, itemID, authorID uuid.UUID, authorName, text string, createdAt time.Time) *Comment {
	return &Comment{
		id:         id,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       Text{value: text},
		createdAt:  createdAt,
	}
}

func (c *Comment) ID() uuid.UUID        { return c.id }
func (c *Comment) ItemID() uuid.UUID    { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID  { return c.authorID }
func (c *Comment) AuthorName() string   { return c.authorName }
func (c *Comment) Text() Text           { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
