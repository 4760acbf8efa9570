package commands

//go:generate mockgen -destination=../../testutil/mock/commands/commands.go -package=commandsmock shareit/internal/usecase/commands AuthCommands,BookingCommands,CommentCommands,IdempotencyStore,ItemCommands,Recorder,UserCommands

import (
	"context"

	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errs.NotFound("user not found")
	ErrItemNotFound = errs.NotFound("item not found")
)

// Recorder receives business events for metrics.
type Recorder interface {
	BookingCreated()
	BookingDecided(status string)
	CommentCreated()
}

// IdempotencyStore guards booking creation against client retries.
// Claim returns claimed=true when the caller now owns the key; otherwise it returns the existing record.
type IdempotencyStore interface {
	Claim(ctx context.Context, userID uuid.UUID, key, requestHash string) (*shared.IdempotencyRecord, bool, error)
	Complete(ctx context.Context, userID uuid.UUID, key, requestHash string, bookingID uuid.UUID) error
	Release(ctx context.Context, userID uuid.UUID, key string) error
}

func notFoundAs(err, target error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return target
	}
	return err
}
