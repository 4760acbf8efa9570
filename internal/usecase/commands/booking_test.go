//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/infra/cache"
	"shareit/internal/pkg/errs"
	"shareit/internal/testutil/builder"
	"shareit/internal/testutil/memstore"
	commandsmock "shareit/internal/testutil/mock/commands"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/shared"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBookingCommands_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a WAITING booking", func(t *testing.T) {
		f := newFixture(t)
		rec := newCountingRecorder()
		uc := commands.NewBookingCommands(f.store, nil, f.clock, rec)

		owner := f.seedUser("owner")
		booker := f.seedUser("booker")
		it := f.seedItem(owner.ID, true)

		req := reqdto.CreateBookingRequest{
			ItemID: it.ID,
			Start:  baseTime.Add(24 * time.Hour),
			End:    baseTime.Add(72 * time.Hour),
		}
		res, err := uc.Create(ctx, req, booker.ID, "")
		require.NoError(t, err)
		require.NotNil(t, res.Booking)

		assert.False(t, res.IsReplayed)
		assert.Equal(t, booking.StatusWaiting.String(), res.Booking.Status)
		assert.Equal(t, it.ID, res.Booking.Item.ID)
		assert.Equal(t, it.Name, res.Booking.Item.Name)
		assert.Equal(t, booker.ID, res.Booking.Booker.ID)
		assert.Equal(t, req.Start, res.Booking.Start)
		assert.Equal(t, req.End, res.Booking.End)
		assert.Equal(t, 1, rec.created)

		stored, ok := f.store.Booking(res.Booking.ID)
		require.True(t, ok)
		assert.Equal(t, booking.StatusWaiting, stored.Status)
		assert.Equal(t, baseTime, stored.CreatedAt)
	})

	t.Run("overlapping bookings are both accepted", func(t *testing.T) {
		f := newFixture(t)
		uc := commands.NewBookingCommands(f.store, nil, f.clock, newCountingRecorder())

		owner := f.seedUser("owner")
		first := f.seedUser("first")
		second := f.seedUser("second")
		it := f.seedItem(owner.ID, true)

		req := reqdto.CreateBookingRequest{ItemID: it.ID, Start: baseTime.Add(time.Hour), End: baseTime.Add(5 * time.Hour)}
		_, err := uc.Create(ctx, req, first.ID, "")
		require.NoError(t, err)
		_, err = uc.Create(ctx, req, second.ID, "")
		require.NoError(t, err)

		assert.Equal(t, 2, f.store.CountBookings())
	})
}

func TestBookingCommands_CreateValidationOrder(t *testing.T) {
	ctx := context.Background()
	start := baseTime.Add(24 * time.Hour)
	end := baseTime.Add(48 * time.Hour)

	tests := []struct {
		name      string
		booker    string
		available bool
		missing   string
		start     time.Time
		end       time.Time
		wantErr   error
	}{
		{
			name:      "unknown booker",
			booker:    "nobody",
			available: true,
			start:     start,
			end:       end,
			wantErr:   commands.ErrUserNotFound,
		},
		{
			name:      "unknown item",
			booker:    "booker",
			available: true,
			missing:   "item",
			start:     start,
			end:       end,
			wantErr:   commands.ErrItemNotFound,
		},
		{
			name:      "unavailable item wins over owner booking and bad period",
			booker:    "owner",
			available: false,
			start:     end,
			end:       start,
			wantErr:   booking.ErrItemUnavailable,
		},
		{
			name:      "owner booking wins over bad period",
			booker:    "owner",
			available: true,
			start:     end,
			end:       start,
			wantErr:   booking.ErrOwnerBooking,
		},
		{
			name:      "start after end",
			booker:    "booker",
			available: true,
			start:     end,
			end:       start,
			wantErr:   booking.ErrInvalidPeriod,
		},
		{
			name:      "start equal to end",
			booker:    "booker",
			available: true,
			start:     start,
			end:       start,
			wantErr:   booking.ErrInvalidPeriod,
		},
		{
			name:      "missing start",
			booker:    "booker",
			available: true,
			end:       end,
			wantErr:   booking.ErrMissingPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec := newCountingRecorder()
			uc := commands.NewBookingCommands(f.store, nil, f.clock, rec)

			users := map[string]uuid.UUID{
				"owner":  f.seedUser("owner").ID,
				"booker": f.seedUser("booker").ID,
				"nobody": uuid.New(),
			}
			it := f.seedItem(users["owner"], tt.available)
			itemID := it.ID
			if tt.missing == "item" {
				itemID = uuid.New()
			}

			req := reqdto.CreateBookingRequest{ItemID: itemID, Start: tt.start, End: tt.end}
			res, err := uc.Create(ctx, req, users[tt.booker], "")

			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.store.CountBookings())
			assert.Equal(t, 0, rec.created)
		})
	}
}

func TestBookingCommands_Decide(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, status booking.Status) (*fixture, commands.BookingCommands, *countingRecorder, *shared.BookingSnapshot, *shared.ItemSnapshot) {
		f := newFixture(t)
		rec := newCountingRecorder()
		uc := commands.NewBookingCommands(f.store, nil, f.clock, rec)
		owner := f.seedUser("owner")
		booker := f.seedUser("booker")
		it := f.seedItem(owner.ID, true)
		b := f.seedBooking(it, booker.ID, func(b *builder.BookingBuilder) { b.Status = status })
		return f, uc, rec, b, it
	}

	t.Run("owner approves", func(t *testing.T) {
		f, uc, rec, b, it := setup(t, booking.StatusWaiting)
		f.clock.Add(time.Minute)

		view, err := uc.Decide(ctx, b.ID, it.OwnerID, true)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusApproved.String(), view.Status)
		assert.Equal(t, 1, rec.decided["APPROVED"])

		stored, _ := f.store.Booking(b.ID)
		assert.Equal(t, booking.StatusApproved, stored.Status)
		assert.Equal(t, baseTime.Add(time.Minute), stored.UpdatedAt)
	})

	t.Run("owner rejects", func(t *testing.T) {
		f, uc, rec, b, it := setup(t, booking.StatusWaiting)

		view, err := uc.Decide(ctx, b.ID, it.OwnerID, false)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusRejected.String(), view.Status)
		assert.Equal(t, 1, rec.decided["REJECTED"])

		stored, _ := f.store.Booking(b.ID)
		assert.Equal(t, booking.StatusRejected, stored.Status)
	})

	t.Run("booker cannot decide", func(t *testing.T) {
		f, uc, rec, b, _ := setup(t, booking.StatusWaiting)

		_, err := uc.Decide(ctx, b.ID, b.BookerID, true)
		assert.ErrorIs(t, err, booking.ErrNotItemOwner)
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
		assert.Empty(t, rec.decided)

		stored, _ := f.store.Booking(b.ID)
		assert.Equal(t, booking.StatusWaiting, stored.Status)
	})

	for _, status := range []booking.Status{booking.StatusApproved, booking.StatusRejected} {
		t.Run("terminal "+status.String()+" rejects a second decision", func(t *testing.T) {
			f, uc, _, b, it := setup(t, status)

			for _, approve := range []bool{true, false} {
				_, err := uc.Decide(ctx, b.ID, it.OwnerID, approve)
				assert.ErrorIs(t, err, booking.ErrAlreadyDecided)
			}
			stored, _ := f.store.Booking(b.ID)
			assert.Equal(t, status, stored.Status)
		})
	}

	t.Run("unknown booking", func(t *testing.T) {
		_, uc, _, _, it := setup(t, booking.StatusWaiting)

		_, err := uc.Decide(ctx, uuid.New(), it.OwnerID, true)
		assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	})

	t.Run("lost conditional update reports already decided", func(t *testing.T) {
		f, _, rec, b, it := setup(t, booking.StatusWaiting)
		uc := commands.NewBookingCommands(lostRaceUoW{Store: f.store}, nil, f.clock, rec)

		_, err := uc.Decide(ctx, b.ID, it.OwnerID, true)
		assert.ErrorIs(t, err, booking.ErrAlreadyDecided)
		assert.Empty(t, rec.decided)
	})

	t.Run("concurrent decisions leave exactly one winner", func(t *testing.T) {
		f, _, _, b, it := setup(t, booking.StatusWaiting)
		uc := commands.NewBookingCommands(f.store, nil, f.clock, &lockedRecorder{})

		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			conflicts int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(approve bool) {
				defer wg.Done()
				_, err := uc.Decide(ctx, b.ID, it.OwnerID, approve)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, booking.ErrAlreadyDecided):
					conflicts++
				}
			}(i%2 == 0)
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, workers-1, conflicts)
		stored, _ := f.store.Booking(b.ID)
		assert.True(t, stored.Status.IsTerminal())
	})
}

func TestBookingCommands_Idempotency(t *testing.T) {
	ctx := context.Background()
	const key = "create-drill-booking"

	newCase := func(t *testing.T) (*fixture, *commandsmock.MockIdempotencyStore, commands.BookingCommands, reqdto.CreateBookingRequest, uuid.UUID) {
		f := newFixture(t)
		ctrl := gomock.NewController(t)
		idem := commandsmock.NewMockIdempotencyStore(ctrl)
		uc := commands.NewBookingCommands(f.store, idem, f.clock, newCountingRecorder())

		owner := f.seedUser("owner")
		booker := f.seedUser("booker")
		it := f.seedItem(owner.ID, true)
		req := reqdto.CreateBookingRequest{ItemID: it.ID, Start: baseTime.Add(time.Hour), End: baseTime.Add(2 * time.Hour)}
		return f, idem, uc, req, booker.ID
	}

	t.Run("claimed key completes with the new booking id", func(t *testing.T) {
		f, idem, uc, req, bookerID := newCase(t)

		idem.EXPECT().Claim(gomock.Any(), bookerID, key, gomock.Any()).Return(nil, true, nil)
		idem.EXPECT().Complete(gomock.Any(), bookerID, key, gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.Create(ctx, req, bookerID, key)
		require.NoError(t, err)
		assert.False(t, res.IsReplayed)
		assert.Equal(t, 1, f.store.CountBookings())
	})

	t.Run("completed record replays the stored booking", func(t *testing.T) {
		f, idem, uc, req, bookerID := newCase(t)
		it, _ := f.store.Item(req.ItemID)
		existing := f.seedBooking(&it, bookerID, nil)

		idem.EXPECT().Claim(gomock.Any(), bookerID, key, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ string, hash string) (*shared.IdempotencyRecord, bool, error) {
				return &shared.IdempotencyRecord{
					Status:      shared.IdempotencyCompleted,
					RequestHash: hash,
					BookingID:   &existing.ID,
				}, false, nil
			})

		res, err := uc.Create(ctx, req, bookerID, key)
		require.NoError(t, err)
		assert.True(t, res.IsReplayed)
		assert.Equal(t, existing.ID, res.Booking.ID)
		assert.Equal(t, 1, f.store.CountBookings())
	})

	t.Run("completion is retried once", func(t *testing.T) {
		f, idem, uc, req, bookerID := newCase(t)

		idem.EXPECT().Claim(gomock.Any(), bookerID, key, gomock.Any()).Return(nil, true, nil)
		gomock.InOrder(
			idem.EXPECT().Complete(gomock.Any(), bookerID, key, gomock.Any(), gomock.Any()).Return(errors.New("i/o timeout")),
			idem.EXPECT().Complete(gomock.Any(), bookerID, key, gomock.Any(), gomock.Any()).Return(nil),
		)

		res, err := uc.Create(ctx, req, bookerID, key)
		require.NoError(t, err)
		assert.Equal(t, 1, f.store.CountBookings())
		assert.NotNil(t, res.Booking)
	})

	t.Run("completion failure still returns the committed booking", func(t *testing.T) {
		f, idem, uc, req, bookerID := newCase(t)

		idem.EXPECT().Claim(gomock.Any(), bookerID, key, gomock.Any()).Return(nil, true, nil)
		idem.EXPECT().Complete(gomock.Any(), bookerID, key, gomock.Any(), gomock.Any()).
			Return(errors.New("i/o timeout")).Times(2)

		res, err := uc.Create(ctx, req, bookerID, key)
		require.NoError(t, err)
		assert.False(t, res.IsReplayed)
		assert.Equal(t, 1, f.store.CountBookings())
	})

	t.Run("different request under the same key", func(t *testing.T) {
		_, idem, uc, req, bookerID := newCase(t)

		idem.EXPECT().Claim(gomock.Any(), bookerID, key, gomock.Any()).
			Return(&shared.IdempotencyRecord{Status: shared.IdempotencyCompleted, RequestHash: "other"}, false, nil)

		_, err := uc.Create(ctx, req, bookerID, key)
		assert.ErrorIs(t, err, commands.ErrIdempotencyMismatch)
	})

	t.Run("key still processing", func(t *testing.T) {
		_, idem, uc, req, bookerID := newCase(t)

		idem.EXPECT().Claim(gomock.Any(), bookerID, key, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ string, hash string) (*shared.IdempotencyRecord, bool, error) {
				return &shared.IdempotencyRecord{Status: shared.IdempotencyProcessing, RequestHash: hash}, false, nil
			})

		_, err := uc.Create(ctx, req, bookerID, key)
		assert.ErrorIs(t, err, commands.ErrIdempotencyInProgress)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("failed creation releases the key", func(t *testing.T) {
		_, idem, uc, req, bookerID := newCase(t)
		req.End = req.Start

		idem.EXPECT().Claim(gomock.Any(), bookerID, key, gomock.Any()).Return(nil, true, nil)
		idem.EXPECT().Release(gomock.Any(), bookerID, key).Return(nil)

		_, err := uc.Create(ctx, req, bookerID, key)
		assert.ErrorIs(t, err, booking.ErrInvalidPeriod)
	})

	t.Run("store failure is marked", func(t *testing.T) {
		f, idem, uc, req, bookerID := newCase(t)

		idem.EXPECT().Claim(gomock.Any(), bookerID, key, gomock.Any()).Return(nil, false, errors.New("connection refused"))

		_, err := uc.Create(ctx, req, bookerID, key)
		require.Error(t, err)
		assert.True(t, errs.Is(err, commands.ErrIdempotencyCheck))
		assert.Equal(t, errs.KindInternal, errs.KindOf(err))
		assert.Equal(t, 0, f.store.CountBookings())
	})

	t.Run("redis backed replay", func(t *testing.T) {
		f := newFixture(t)
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		uc := commands.NewBookingCommands(f.store, cache.NewIdempotencyStore(client, time.Hour), f.clock, newCountingRecorder())

		owner := f.seedUser("owner")
		booker := f.seedUser("booker")
		it := f.seedItem(owner.ID, true)
		req := reqdto.CreateBookingRequest{ItemID: it.ID, Start: baseTime.Add(time.Hour), End: baseTime.Add(2 * time.Hour)}

		first, err := uc.Create(ctx, req, booker.ID, key)
		require.NoError(t, err)
		second, err := uc.Create(ctx, req, booker.ID, key)
		require.NoError(t, err)

		assert.False(t, first.IsReplayed)
		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.Booking, second.Booking)
		assert.Equal(t, 1, f.store.CountBookings())

		req.End = req.End.Add(time.Hour)
		_, err = uc.Create(ctx, req, booker.ID, key)
		assert.ErrorIs(t, err, commands.ErrIdempotencyMismatch)
	})
}

// lostRaceUoW simulates another decider committing between the read and the conditional update.
type lostRaceUoW struct {
	*memstore.Store
}

func (u lostRaceUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.Store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return fn(ctx, lostRaceTx{Tx: tx})
	})
}

type lostRaceTx struct {
	shared.Tx
}

func (t lostRaceTx) Bookings() shared.BookingRepository { return lostRaceBookings{t.Tx.Bookings()} }

type lostRaceBookings struct {
	shared.BookingRepository
}

func (lostRaceBookings) Decide(context.Context, *booking.Booking) (bool, error) { return false, nil }

type lockedRecorder struct {
	mu      sync.Mutex
	decided int
}

func (r *lockedRecorder) BookingCreated() {}

func (r *lockedRecorder) BookingDecided(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decided++
}

func (r *lockedRecorder) CommentCreated() {}
