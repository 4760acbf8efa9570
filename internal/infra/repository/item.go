package repository

import (
	"context"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	sqlc "shareit/internal/infra/sqlc/generated"
	"shareit/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ItemWriteQueries interface {
	CreateItem(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateItemParams) (uuid.UUID, error)
	UpdateItem(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateItemParams) (int64, error)
}

type ItemRepository struct {
	queries ItemWriteQueries
	db      sqlc.DBTX
}

func NewItemRepository(queries ItemWriteQueries, db sqlc.DBTX) *ItemRepository {
	return &ItemRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ItemRepository) Create(ctx context.Context, it *item.Item) error {
	params := sqlc.CreateItemParams{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		CreatedAt:   pgconv.TimeToPgtype(it.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(it.UpdatedAt()),
	}
	if _, err := r.queries.CreateItem(ctx, r.db, params); err != nil {
		return wrapWriteErr("failed to create item", err)
	}
	return nil
}

func (r *ItemRepository) Update(ctx context.Context, it *item.Item) error {
	params := sqlc.UpdateItemParams{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		UpdatedAt:   pgconv.TimeToPgtype(it.UpdatedAt()),
	}
	rows, err := r.queries.UpdateItem(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update item", err)
	}
	if rows == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}
