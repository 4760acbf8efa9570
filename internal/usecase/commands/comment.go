package commands

import (
	"context"
	"log/slog"

	"shareit/internal/domain/comment"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/google/uuid"
)

type CommentCommands interface {
	Create(ctx context.Context, itemID, authorID uuid.UUID, req reqdto.CreateCommentRequest) (*queries.CommentView, error)
}

type commentCommandsImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	recorder Recorder
}

func NewCommentCommands(uow shared.UnitOfWork, clk clock.Clock, recorder Recorder) CommentCommands {
	return &commentCommandsImpl{uow: uow, clock: clk, recorder: recorder}
}

func (uc *commentCommandsImpl) Create(ctx context.Context, itemID, authorID uuid.UUID, req reqdto.CreateCommentRequest) (*queries.CommentView, error) {
	text, err := comment.NewText(req.Text)
	if err != nil {
		return nil, err
	}

	var view *queries.CommentView
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()
		author, err := reads.UserByID(ctx, authorID)
		if err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		itSnap, err := reads.ItemByID(ctx, itemID)
		if err != nil {
			return notFoundAs(err, ErrItemNotFound)
		}

		services := comment.Services{
			Clock:       uc.clock,
			Eligibility: reads,
		}
		c, err := comment.NewComment(ctx, services, itSnap.ToDomain(), authorID, author.Name, text)
		if err != nil {
			return err
		}
		if err := tx.Comments().Create(ctx, c); err != nil {
			return err
		}

		view = &queries.CommentView{
			ID:         c.ID(),
			ItemID:     c.ItemID(),
			Text:       c.Text().String(),
			AuthorName: c.AuthorName(),
			Created:    c.CreatedAt(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.CommentCreated()
	slog.Info("comment created", "comment_id", view.ID, "item_id", itemID, "author_id", authorID)
	return view, nil
}
