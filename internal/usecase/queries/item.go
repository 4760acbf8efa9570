package queries

import (
	"context"
	"strings"
	"time"

	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrItemNotFound = errs.NotFound("item not found")

type ItemReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemView, error)
	SearchAvailable(ctx context.Context, text string) ([]*ItemView, error)
	LastBookingStart(ctx context.Context, itemID uuid.UUID, now time.Time) (*time.Time, error)
	NextBookingStart(ctx context.Context, itemID uuid.UUID, now time.Time) (*time.Time, error)
}

type CommentReadStore interface {
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*CommentView, error)
	ListByItems(ctx context.Context, itemIDs []uuid.UUID) ([]*CommentView, error)
}

type ItemQueries interface {
	GetByID(ctx context.Context, itemID, actorID uuid.UUID) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemView, error)
	Search(ctx context.Context, text string) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	items    ItemReadStore
	comments CommentReadStore
	clock    clock.Clock
}

func NewItemQueries(items ItemReadStore, comments CommentReadStore, clk clock.Clock) ItemQueries {
	return &itemQueriesImpl{
		items:    items,
		comments: comments,
		clock:    clk,
	}
}

// GetByID fills lastBooking and nextBooking only when the actor owns the item.
func (q *itemQueriesImpl) GetByID(ctx context.Context, itemID, actorID uuid.UUID) (*ItemView, error) {
	view, err := q.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	comments, err := q.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	view.Comments = nonNil(comments)

	if view.OwnerID == actorID {
		if err := q.fillBookingDates(ctx, view); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemView, error) {
	views, err := q.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return []*ItemView{}, nil
	}

	ids := make([]uuid.UUID, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	comments, err := q.comments.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	byItem := make(map[uuid.UUID][]*CommentView, len(views))
	for _, c := range comments {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}

	for _, v := range views {
		v.Comments = nonNil(byItem[v.ID])
		if err := q.fillBookingDates(ctx, v); err != nil {
			return nil, err
		}
	}
	return views, nil
}

// Search returns no items for blank text.
func (q *itemQueriesImpl) Search(ctx context.Context, text string) ([]*ItemView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*ItemView{}, nil
	}

	views, err := q.items.SearchAvailable(ctx, text)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []*ItemView{}
	}
	return views, nil
}

func (q *itemQueriesImpl) fillBookingDates(ctx context.Context, view *ItemView) error {
	now := q.clock.Now()

	last, err := q.items.LastBookingStart(ctx, view.ID, now)
	if err != nil {
		return err
	}
	next, err := q.items.NextBookingStart(ctx, view.ID, now)
	if err != nil {
		return err
	}

	view.LastBooking = last
	view.NextBooking = next
	return nil
}

func nonNil(c []*CommentView) []*CommentView {
	if c == nil {
		return []*CommentView{}
	}
	return c
}
