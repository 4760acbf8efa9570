package commands

import (
	"context"
	"log/slog"

	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/jwt"
	"shareit/internal/pkg/password"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.Unauthorized("invalid email or password")
	ErrUserInactive       = errs.Forbidden("user account is inactive")
	ErrTokenValidation    = errs.Unauthorized("invalid refresh token")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type LoginResult struct {
	UserID    uuid.UUID
	User      *queries.UserView
	TokenPair *TokenPair
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	snap, err := a.uow.CommandReads().UserByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// same error as a password mismatch so emails cannot be enumerated
		return nil, ErrInvalidCredentials
	}
	if !snap.IsActive {
		return nil, ErrUserInactive
	}
	if err := password.Compare(snap.PasswordHash, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := a.issue(snap.ID)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, snap.ID)
	})
	if err != nil {
		slog.Warn("failed to update last login", "user_id", snap.ID, "error", err.Error())
	}

	return &LoginResult{
		UserID:    snap.ID,
		User:      snapshotToUserView(snap),
		TokenPair: pair,
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrTokenValidation
	}
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrTokenValidation
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	snap, err := a.uow.CommandReads().UserByID(ctx, claims.UserID)
	if err != nil {
		return nil, notFoundAs(err, ErrTokenValidation)
	}
	if !snap.IsActive {
		return nil, ErrUserInactive
	}

	return a.issue(claims.UserID)
}

func (a *authCommandsImpl) issue(userID uuid.UUID) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func snapshotToUserView(s *shared.UserSnapshot) *queries.UserView {
	return &queries.UserView{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}
