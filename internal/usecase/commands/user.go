package commands

import (
	"context"
	"log/slog"

	"shareit/internal/domain/user"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/password"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken   = errs.Conflict("email already in use")
	ErrPasswordHash = errs.New("password hashing failed")
)

type UserCommands interface {
	Register(ctx context.Context, req reqdto.CreateUserRequest) (*queries.UserView, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req reqdto.UpdateUserRequest) (*queries.UserView, error)
}

type userCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewUserCommands(uow shared.UnitOfWork, clk clock.Clock) UserCommands {
	return &userCommandsImpl{uow: uow, clock: clk}
}

func (uc *userCommandsImpl) Register(ctx context.Context, req reqdto.CreateUserRequest) (*queries.UserView, error) {
	name, err := user.NewName(req.Name)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	pw, err := user.NewPassword(req.Password)
	if err != nil {
		return nil, err
	}
	hash, err := password.Hash(pw.Value())
	if err != nil {
		return nil, errs.Mark(err, ErrPasswordHash)
	}

	u := user.NewUser(name, email, hash, uc.clock.Now())
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := uc.ensureEmailFree(ctx, tx.Reads(), email, uuid.Nil); err != nil {
			return err
		}
		return translateDuplicate(tx.Users().Create(ctx, u))
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", u.ID())
	return toUserView(u), nil
}

// UpdateProfile re-checks email uniqueness only when the email actually changes.
func (uc *userCommandsImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req reqdto.UpdateUserRequest) (*queries.UserView, error) {
	name, email, err := req.ToDomain()
	if err != nil {
		return nil, err
	}

	var updated *user.User
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().UserByID(ctx, userID)
		if err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}

		u := snap.ToDomain()
		if u.ChangeProfile(name, email, uc.clock.Now()) {
			if err := uc.ensureEmailFree(ctx, tx.Reads(), u.Email(), u.ID()); err != nil {
				return err
			}
		}
		if err := tx.Users().UpdateProfile(ctx, u); err != nil {
			return notFoundAs(translateDuplicate(err), ErrUserNotFound)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toUserView(updated), nil
}

func (uc *userCommandsImpl) ensureEmailFree(ctx context.Context, reads shared.CommandReads, email user.Email, self uuid.UUID) error {
	existing, err := reads.UserByEmail(ctx, email.Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return ErrEmailTaken
	}
	return nil
}

func translateDuplicate(err error) error {
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return ErrEmailTaken
	}
	return err
}

func toUserView(u *user.User) *queries.UserView {
	return &queries.UserView{
		ID:        u.ID(),
		Name:      u.Name().Value(),
		Email:     u.Email().Value(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}
