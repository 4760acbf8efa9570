package commands

import (
	"context"

	"shareit/internal/domain/item"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/ptr"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/google/uuid"
)

type ItemCommands interface {
	Create(ctx context.Context, req reqdto.CreateItemRequest, ownerID uuid.UUID) (*queries.ItemView, error)
	Update(ctx context.Context, itemID uuid.UUID, req reqdto.UpdateItemRequest, actorID uuid.UUID) (*queries.ItemView, error)
}

type itemCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewItemCommands(uow shared.UnitOfWork, clk clock.Clock) ItemCommands {
	return &itemCommandsImpl{uow: uow, clock: clk}
}

func (uc *itemCommandsImpl) Create(ctx context.Context, req reqdto.CreateItemRequest, ownerID uuid.UUID) (*queries.ItemView, error) {
	var created *item.Item
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().UserByID(ctx, ownerID); err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}

		it, err := item.NewItem(ownerID, req.Name, req.Description, ptr.Deref(req.Available), uc.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Items().Create(ctx, it); err != nil {
			return err
		}
		created = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemView(created), nil
}

func (uc *itemCommandsImpl) Update(ctx context.Context, itemID uuid.UUID, req reqdto.UpdateItemRequest, actorID uuid.UUID) (*queries.ItemView, error) {
	var updated *item.Item
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ItemByID(ctx, itemID)
		if err != nil {
			return notFoundAs(err, ErrItemNotFound)
		}

		it := snap.ToDomain()
		if err := it.Apply(actorID, req.ToDomain(), uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Items().Update(ctx, it); err != nil {
			return notFoundAs(err, ErrItemNotFound)
		}
		updated = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemView(updated), nil
}

func toItemView(it *item.Item) *queries.ItemView {
	return &queries.ItemView{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		Comments:    []*queries.CommentView{},
	}
}
