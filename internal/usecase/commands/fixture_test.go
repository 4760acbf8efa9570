//go:build unit

package commands_test

import (
	"os"
	"testing"
	"time"

	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/password"
	"shareit/internal/testutil/builder"
	"shareit/internal/testutil/memstore"
	"shareit/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	password.SetCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store *memstore.Store
	clock *clock.MockClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		store: memstore.New(),
		clock: clock.NewMockClock(baseTime),
	}
}

func (f *fixture) seedUser(name string) *shared.UserSnapshot {
	snap := builder.NewUserBuilder().
		WithName(name).
		WithEmail(name + "@example.com").
		BuildSnapshot()
	f.store.SeedUser(*snap)
	return snap
}

func (f *fixture) seedItem(ownerID uuid.UUID, available bool) *shared.ItemSnapshot {
	b := builder.NewItemBuilder().WithOwner(ownerID)
	if !available {
		b.Unavailable()
	}
	snap := b.BuildSnapshot()
	f.store.SeedItem(*snap)
	return snap
}

func (f *fixture) seedBooking(it *shared.ItemSnapshot, bookerID uuid.UUID, mutate func(*builder.BookingBuilder)) *shared.BookingSnapshot {
	b := builder.NewBookingBuilder().BookedBy(bookerID)
	b.ItemID = it.ID
	b.ItemName = it.Name
	b.ItemOwnerID = it.OwnerID
	if mutate != nil {
		b.With(mutate)
	}
	snap := b.BuildSnapshot()
	f.store.SeedBooking(*snap)
	return snap
}

// countingRecorder is a commands.Recorder that keeps counts in memory.
type countingRecorder struct {
	created   int
	decided   map[string]int
	commented int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{decided: map[string]int{}}
}

func (r *countingRecorder) BookingCreated()              { r.created++ }
func (r *countingRecorder) BookingDecided(status string) { r.decided[status]++ }
func (r *countingRecorder) CommentCreated()              { r.commented++ }
