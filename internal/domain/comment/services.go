package comment

import (
	"context"
	"time"

	"shareit/internal/pkg/clock"

	"github.com/google/uuid"
)

type Services struct {
	Clock       clock.Clock
	Eligibility EligibilityChecker
}

// EligibilityChecker reports whether userID has an APPROVED booking of itemID that ended before now.
type EligibilityChecker interface {
	HasCompletedBooking(ctx context.Context, itemID, userID uuid.UUID, now time.Time) (bool, error)
}
