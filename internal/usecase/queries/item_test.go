//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/testutil/builder"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (w *world) itemQueries() queries.ItemQueries {
	return queries.NewItemQueries(w.store.ItemReadStore(), w.store.CommentReadStore(), w.clock)
}

func TestItemQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)

	w.book(booking.StatusApproved, -72*time.Hour, -48*time.Hour)
	w.book(booking.StatusApproved, -30*time.Hour, -24*time.Hour)
	w.book(booking.StatusRejected, -10*time.Hour, -9*time.Hour)
	w.book(booking.StatusWaiting, 24*time.Hour, 48*time.Hour)
	w.book(booking.StatusRejected, 2*time.Hour, 3*time.Hour)
	w.book(booking.StatusApproved, 72*time.Hour, 96*time.Hour)

	t.Run("owner sees last and next booking", func(t *testing.T) {
		view, err := w.itemQueries().GetByID(ctx, w.item.ID, w.owner.ID)
		require.NoError(t, err)

		require.NotNil(t, view.LastBooking)
		require.NotNil(t, view.NextBooking)
		assert.Equal(t, now.Add(-30*time.Hour), *view.LastBooking)
		assert.Equal(t, now.Add(24*time.Hour), *view.NextBooking)
		assert.NotNil(t, view.Comments)
	})

	t.Run("others do not", func(t *testing.T) {
		view, err := w.itemQueries().GetByID(ctx, w.item.ID, w.booker.ID)
		require.NoError(t, err)
		assert.Nil(t, view.LastBooking)
		assert.Nil(t, view.NextBooking)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := w.itemQueries().GetByID(ctx, uuid.New(), w.owner.ID)
		assert.ErrorIs(t, err, queries.ErrItemNotFound)
	})
}

func TestItemQueries_Comments(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	w.book(booking.StatusApproved, -48*time.Hour, -24*time.Hour)

	cc := commands.NewCommentCommands(w.store, w.clock, noopRecorder{})
	_, err := cc.Create(ctx, w.item.ID, w.booker.ID, commentRequest("first"))
	require.NoError(t, err)
	w.clock.Add(time.Minute)
	_, err = cc.Create(ctx, w.item.ID, w.booker.ID, commentRequest("second"))
	require.NoError(t, err)

	view, err := w.itemQueries().GetByID(ctx, w.item.ID, w.booker.ID)
	require.NoError(t, err)
	require.Len(t, view.Comments, 2)
	assert.Equal(t, "first", view.Comments[0].Text)
	assert.Equal(t, "second", view.Comments[1].Text)
	assert.Equal(t, "booker", view.Comments[0].AuthorName)

	owned, err := w.itemQueries().ListByOwner(ctx, w.owner.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Len(t, owned[0].Comments, 2)
	assert.NotNil(t, owned[0].LastBooking)
}

func TestItemQueries_ListByOwner(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)

	empty, err := w.itemQueries().ListByOwner(ctx, w.booker.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	second := builder.NewItemBuilder().WithOwner(w.owner.ID).With(func(b *builder.ItemBuilder) {
		b.Name = "Saw"
		b.CreatedAt = b.CreatedAt.Add(time.Hour)
	}).BuildSnapshot()
	w.store.SeedItem(*second)

	owned, err := w.itemQueries().ListByOwner(ctx, w.owner.ID)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, w.item.ID, owned[0].ID)
	assert.Equal(t, second.ID, owned[1].ID)
	for _, v := range owned {
		assert.NotNil(t, v.Comments)
	}
}

func TestItemQueries_Search(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	w.store.SeedItem(*builder.NewItemBuilder().WithOwner(w.owner.ID).Unavailable().With(func(b *builder.ItemBuilder) {
		b.Name = "Broken drill"
	}).BuildSnapshot())
	w.store.SeedItem(*builder.NewItemBuilder().WithOwner(w.owner.ID).With(func(b *builder.ItemBuilder) {
		b.Name = "Kayak"
		b.Description = "Two seats, paddles included"
	}).BuildSnapshot())

	tests := []struct {
		text string
		want []string
	}{
		{text: "DRILL", want: []string{"Drill"}},
		{text: "paddles", want: []string{"Kayak"}},
		{text: "  ", want: []string{}},
		{text: "", want: []string{}},
		{text: "piano", want: []string{}},
	}

	for _, tt := range tests {
		t.Run("text="+tt.text, func(t *testing.T) {
			got, err := w.itemQueries().Search(ctx, tt.text)
			require.NoError(t, err)
			require.NotNil(t, got)
			names := make([]string, 0, len(got))
			for _, v := range got {
				names = append(names, v.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestUserQueries_GetCurrentUser(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	inactive := builder.NewUserBuilder().WithEmail("gone@example.com").AsInactive().BuildSnapshot()
	w.store.SeedUser(*inactive)

	q := queries.NewUserQueries(w.store.UserReadStore())

	view, err := q.GetCurrentUser(ctx, w.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, w.owner.Email, view.Email)

	_, err = q.GetCurrentUser(ctx, inactive.ID)
	assert.ErrorIs(t, err, queries.ErrUserInactive)

	_, err = q.GetCurrentUser(ctx, uuid.New())
	assert.ErrorIs(t, err, queries.ErrUserNotFound)
}

type noopRecorder struct{}

func (noopRecorder) BookingCreated()       {}
func (noopRecorder) BookingDecided(string) {}
func (noopRecorder) CommentCreated()       {}

func commentRequest(text string) reqdto.CreateCommentRequest {
	return reqdto.CreateCommentRequest{Text: text}
}
