package repository

import (
	"context"

	"shareit/internal/domain/comment"
	sqlc "shareit/internal/infra/sqlc/generated"
	"shareit/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CommentWriteQueries interface {
	CreateComment(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCommentParams) (uuid.UUID, error)
}

type CommentRepository struct {
	queries CommentWriteQueries
	db      sqlc.DBTX
}

func NewCommentRepository(queries CommentWriteQueries, db sqlc.DBTX) *CommentRepository {
	return &CommentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	params := sqlc.CreateCommentParams{
		ID:         c.ID(),
		ItemID:     c.ItemID(),
		AuthorID:   c.AuthorID(),
		AuthorName: c.AuthorName(),
		Text:       c.Text().String(),
		CreatedAt:  pgconv.TimeToPgtype(c.CreatedAt()),
	}
	if _, err := r.queries.CreateComment(ctx, r.db, params); err != nil {
		return wrapWriteErr("failed to create comment", err)
	}
	return nil
}
