package readstore

import (
	"context"

	"shareit/internal/infra"
	sqlc "shareit/internal/infra/sqlc/generated"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/queries"

	"github.com/google/uuid"
)

type CommentReadQueries interface {
	ListCommentsByItem(ctx context.Context, db sqlc.DBTX, itemID uuid.UUID) ([]sqlc.Comments, error)
	ListCommentsByItems(ctx context.Context, db sqlc.DBTX, itemIds []uuid.UUID) ([]sqlc.Comments, error)
}

type CommentReadStore struct {
	queries CommentReadQueries
	db      sqlc.DBTX
}

func NewCommentReadStore(queries CommentReadQueries, db sqlc.DBTX) *CommentReadStore {
	return &CommentReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CommentReadStore) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*queries.CommentView, error) {
	rows, err := r.queries.ListCommentsByItem(ctx, r.db, itemID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list comments by item", err)
	}
	return mapComments(rows), nil
}

func (r *CommentReadStore) ListByItems(ctx context.Context, itemIDs []uuid.UUID) ([]*queries.CommentView, error) {
	rows, err := r.queries.ListCommentsByItems(ctx, r.db, itemIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list comments by items", err)
	}
	return mapComments(rows), nil
}

func mapComments(rows []sqlc.Comments) []*queries.CommentView {
	result := make([]*queries.CommentView, len(rows))
	for i, row := range rows {
		result[i] = &queries.CommentView{
			ID:         row.ID,
			ItemID:     row.ItemID,
			Text:       row.Text,
			AuthorName: row.AuthorName,
			Created:    pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}
	return result
}
