//go:build unit || e2e

// Package memstore is an in-memory backend for usecase tests. It implements
// the unit of work and every read store with the same filtering and ordering
// rules as the Postgres implementation.
package memstore

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/google/uuid"
)

type commentRow struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	AuthorID   uuid.UUID
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

type state struct {
	users    map[uuid.UUID]shared.UserSnapshot
	items    map[uuid.UUID]shared.ItemSnapshot
	bookings map[uuid.UUID]shared.BookingSnapshot
	comments map[uuid.UUID]commentRow
}

func (s state) clone() state {
	c := state{
		users:    make(map[uuid.UUID]shared.UserSnapshot, len(s.users)),
		items:    make(map[uuid.UUID]shared.ItemSnapshot, len(s.items)),
		bookings: make(map[uuid.UUID]shared.BookingSnapshot, len(s.bookings)),
		comments: make(map[uuid.UUID]commentRow, len(s.comments)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.comments {
		c.comments[k] = v
	}
	return c
}

// Store serializes transactions with a single mutex. A failed transaction
// restores the state captured when it began.
type Store struct {
	mu sync.Mutex
	st state
}

func New() *Store {
	return &Store{st: state{}.clone()}
}

// Within implements shared.UnitOfWork.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.st.clone()
	if err := fn(ctx, &tx{st: &s.st}); err != nil {
		s.st = saved
		return err
	}
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return lockedReads{s: s}
}

// SeedUser inserts a user directly, bypassing domain validation.
func (s *Store) SeedUser(u shared.UserSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[u.ID] = u
}

func (s *Store) SeedItem(it shared.ItemSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.items[it.ID] = it
}

func (s *Store) SeedBooking(b shared.BookingSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.bookings[b.ID] = b
}

// Booking returns the stored row, for assertions.
func (s *Store) Booking(id uuid.UUID) (shared.BookingSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.st.bookings[id]
	return b, ok
}

func (s *Store) User(id uuid.UUID) (shared.UserSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.st.users[id]
	return u, ok
}

func (s *Store) Item(id uuid.UUID) (shared.ItemSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.st.items[id]
	return it, ok
}

func (s *Store) CountBookings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.bookings)
}

func (s *Store) CountComments() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.comments)
}

// Read stores for the query side.

func (s *Store) BookingReadStore() queries.BookingReadStore { return bookingReads{s: s} }
func (s *Store) ItemReadStore() queries.ItemReadStore       { return itemReads{s: s} }
func (s *Store) CommentReadStore() queries.CommentReadStore { return commentReads{s: s} }
func (s *Store) UserReadStore() queries.UserReadStore       { return userReads{s: s} }

type tx struct {
	st *state
}

func (t *tx) Bookings() shared.BookingRepository { return bookingRepo{st: t.st} }
func (t *tx) Items() shared.ItemRepository       { return itemRepo{st: t.st} }
func (t *tx) Users() shared.UserRepository       { return userRepo{st: t.st} }
func (t *tx) Comments() shared.CommentRepository { return commentRepo{st: t.st} }
func (t *tx) Reads() shared.CommandReads         { return reads{st: t.st} }

// reads runs inside a transaction that already holds the lock.
type reads struct {
	st *state
}

func (r reads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return &u, nil
}

func (r reads) UserByEmail(_ context.Context, email string) (*shared.UserSnapshot, error) {
	for _, u := range r.st.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (r reads) ItemByID(_ context.Context, id uuid.UUID) (*shared.ItemSnapshot, error) {
	it, ok := r.st.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return &it, nil
}

func (r reads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	b, ok := r.st.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return &b, nil
}

func (r reads) HasCompletedBooking(_ context.Context, itemID, userID uuid.UUID, now time.Time) (bool, error) {
	for _, b := range r.st.bookings {
		if b.ItemID == itemID && booking.IsCompletedBy(b.BookerID, b.Status, b.End, userID, now) {
			return true, nil
		}
	}
	return false, nil
}

// lockedReads serves CommandReads outside a transaction.
type lockedReads struct {
	s *Store
}

func (r lockedReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return reads{st: &r.s.st}.UserByID(ctx, id)
}

func (r lockedReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return reads{st: &r.s.st}.UserByEmail(ctx, email)
}

func (r lockedReads) ItemByID(ctx context.Context, id uuid.UUID) (*shared.ItemSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return reads{st: &r.s.st}.ItemByID(ctx, id)
}

func (r lockedReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return reads{st: &r.s.st}.BookingByID(ctx, id)
}

func (r lockedReads) HasCompletedBooking(ctx context.Context, itemID, userID uuid.UUID, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return reads{st: &r.s.st}.HasCompletedBooking(ctx, itemID, userID, now)
}

type bookingRepo struct {
	st *state
}

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if _, ok := r.st.items[b.ItemID()]; !ok {
		return infra.WrapRepoErr("booking item missing", nil, infra.KindForeignKeyViolated)
	}
	if _, ok := r.st.users[b.BookerID()]; !ok {
		return infra.WrapRepoErr("booking booker missing", nil, infra.KindForeignKeyViolated)
	}
	if _, ok := r.st.bookings[b.ID()]; ok {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	r.st.bookings[b.ID()] = shared.BookingSnapshot{
		ID:        b.ID(),
		ItemID:    b.ItemID(),
		BookerID:  b.BookerID(),
		Status:    b.Status(),
		Start:     b.Start(),
		End:       b.End(),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
	return nil
}

func (r bookingRepo) Decide(_ context.Context, b *booking.Booking) (bool, error) {
	row, ok := r.st.bookings[b.ID()]
	if !ok || row.Status != booking.StatusWaiting {
		return false, nil
	}
	row.Status = b.Status()
	row.UpdatedAt = b.UpdatedAt()
	r.st.bookings[b.ID()] = row
	return true, nil
}

type itemRepo struct {
	st *state
}

func (r itemRepo) Create(_ context.Context, it *item.Item) error {
	if _, ok := r.st.users[it.OwnerID()]; !ok {
		return infra.WrapRepoErr("item owner missing", nil, infra.KindForeignKeyViolated)
	}
	r.st.items[it.ID()] = itemSnapshot(it)
	return nil
}

func (r itemRepo) Update(_ context.Context, it *item.Item) error {
	if _, ok := r.st.items[it.ID()]; !ok {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	r.st.items[it.ID()] = itemSnapshot(it)
	return nil
}

func itemSnapshot(it *item.Item) shared.ItemSnapshot {
	return shared.ItemSnapshot{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}

type userRepo struct {
	st *state
}

func (r userRepo) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range r.st.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (r userRepo) Create(_ context.Context, u *user.User) error {
	if r.emailTaken(u.Email().Value(), uuid.Nil) {
		return infra.WrapRepoErr("email already exists", nil, infra.KindDuplicateKey)
	}
	r.st.users[u.ID()] = shared.UserSnapshot{
		ID:           u.ID(),
		Name:         u.Name().Value(),
		Email:        u.Email().Value(),
		PasswordHash: u.PasswordHash(),
		LastLogin:    u.LastLogin(),
		IsActive:     u.IsActive(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
	return nil
}

func (r userRepo) UpdateProfile(_ context.Context, u *user.User) error {
	row, ok := r.st.users[u.ID()]
	if !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	if r.emailTaken(u.Email().Value(), u.ID()) {
		return infra.WrapRepoErr("email already exists", nil, infra.KindDuplicateKey)
	}
	row.Name = u.Name().Value()
	row.Email = u.Email().Value()
	row.UpdatedAt = u.UpdatedAt()
	r.st.users[u.ID()] = row
	return nil
}

func (r userRepo) UpdateLastLogin(_ context.Context, userID uuid.UUID) error {
	row, ok := r.st.users[userID]
	if !ok {
		return nil
	}
	now := time.Now()
	row.LastLogin = &now
	r.st.users[userID] = row
	return nil
}

type commentRepo struct {
	st *state
}

func (r commentRepo) Create(_ context.Context, c *comment.Comment) error {
	if _, ok := r.st.items[c.ItemID()]; !ok {
		return infra.WrapRepoErr("comment item missing", nil, infra.KindForeignKeyViolated)
	}
	r.st.comments[c.ID()] = commentRow{
		ID:         c.ID(),
		ItemID:     c.ItemID(),
		AuthorID:   c.AuthorID(),
		AuthorName: c.AuthorName(),
		Text:       c.Text().String(),
		CreatedAt:  c.CreatedAt(),
	}
	return nil
}

type bookingReads struct {
	s *Store
}

func (r bookingReads) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.st.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return r.view(b), nil
}

func (r bookingReads) ListAll(_ context.Context, p queries.Party) ([]*queries.BookingView, error) {
	return r.list(p, func(shared.BookingSnapshot) bool { return true }), nil
}

func (r bookingReads) ListCurrent(_ context.Context, p queries.Party, now time.Time) ([]*queries.BookingView, error) {
	return r.list(p, func(b shared.BookingSnapshot) bool {
		return b.Start.Before(now) && b.End.After(now)
	}), nil
}

func (r bookingReads) ListPast(_ context.Context, p queries.Party, now time.Time) ([]*queries.BookingView, error) {
	return r.list(p, func(b shared.BookingSnapshot) bool { return b.End.Before(now) }), nil
}

func (r bookingReads) ListFuture(_ context.Context, p queries.Party, now time.Time) ([]*queries.BookingView, error) {
	return r.list(p, func(b shared.BookingSnapshot) bool { return b.Start.After(now) }), nil
}

func (r bookingReads) ListByStatus(_ context.Context, p queries.Party, status booking.Status) ([]*queries.BookingView, error) {
	return r.list(p, func(b shared.BookingSnapshot) bool { return b.Status == status }), nil
}

func (r bookingReads) list(p queries.Party, keep func(shared.BookingSnapshot) bool) []*queries.BookingView {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]shared.BookingSnapshot, 0)
	for _, b := range r.s.st.bookings {
		it, ok := r.s.st.items[b.ItemID]
		if !ok {
			continue
		}
		if p.AsOwner && it.OwnerID != p.UserID {
			continue
		}
		if !p.AsOwner && b.BookerID != p.UserID {
			continue
		}
		if keep(b) {
			rows = append(rows, b)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Start.Equal(rows[j].Start) {
			return rows[i].Start.After(rows[j].Start)
		}
		return bytes.Compare(rows[i].ID[:], rows[j].ID[:]) > 0
	})

	views := make([]*queries.BookingView, 0, len(rows))
	for _, b := range rows {
		views = append(views, r.view(b))
	}
	return views
}

// view expects the caller to hold the lock.
func (r bookingReads) view(b shared.BookingSnapshot) *queries.BookingView {
	it := r.s.st.items[b.ItemID]
	return &queries.BookingView{
		ID:          b.ID,
		Item:        queries.BookingItemView{ID: it.ID, Name: it.Name},
		Booker:      queries.BookingBookerView{ID: b.BookerID},
		ItemOwnerID: it.OwnerID,
		Status:      b.Status.String(),
		Start:       b.Start,
		End:         b.End,
	}
}

type itemReads struct {
	s *Store
}

func (r itemReads) FindByID(_ context.Context, id uuid.UUID) (*queries.ItemView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.st.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return itemView(it), nil
}

func (r itemReads) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*queries.ItemView, error) {
	return r.list(func(it shared.ItemSnapshot) bool { return it.OwnerID == ownerID }), nil
}

func (r itemReads) SearchAvailable(_ context.Context, text string) ([]*queries.ItemView, error) {
	needle := strings.ToLower(text)
	return r.list(func(it shared.ItemSnapshot) bool {
		return it.Available &&
			(strings.Contains(strings.ToLower(it.Name), needle) ||
				strings.Contains(strings.ToLower(it.Description), needle))
	}), nil
}

func (r itemReads) LastBookingStart(_ context.Context, itemID uuid.UUID, now time.Time) (*time.Time, error) {
	return r.pick(itemID,
		func(b shared.BookingSnapshot) bool { return b.End.Before(now) },
		func(a, b time.Time) bool { return a.After(b) },
	), nil
}

func (r itemReads) NextBookingStart(_ context.Context, itemID uuid.UUID, now time.Time) (*time.Time, error) {
	return r.pick(itemID,
		func(b shared.BookingSnapshot) bool { return b.Start.After(now) },
		func(a, b time.Time) bool { return a.Before(b) },
	), nil
}

// pick returns the best start among non-rejected bookings of the item.
func (r itemReads) pick(itemID uuid.UUID, keep func(shared.BookingSnapshot) bool, better func(a, b time.Time) bool) *time.Time {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var best *time.Time
	for _, b := range r.s.st.bookings {
		if b.ItemID != itemID || b.Status == booking.StatusRejected || !keep(b) {
			continue
		}
		if best == nil || better(b.Start, *best) {
			start := b.Start
			best = &start
		}
	}
	return best
}

func (r itemReads) list(keep func(shared.ItemSnapshot) bool) []*queries.ItemView {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]shared.ItemSnapshot, 0)
	for _, it := range r.s.st.items {
		if keep(it) {
			rows = append(rows, it)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return bytes.Compare(rows[i].ID[:], rows[j].ID[:]) < 0
	})

	views := make([]*queries.ItemView, 0, len(rows))
	for _, it := range rows {
		views = append(views, itemView(it))
	}
	return views
}

func itemView(it shared.ItemSnapshot) *queries.ItemView {
	return &queries.ItemView{
		ID:          it.ID,
		OwnerID:     it.OwnerID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
	}
}

type commentReads struct {
	s *Store
}

func (r commentReads) ListByItem(_ context.Context, itemID uuid.UUID) ([]*queries.CommentView, error) {
	return r.list(func(c commentRow) bool { return c.ItemID == itemID }), nil
}

func (r commentReads) ListByItems(_ context.Context, itemIDs []uuid.UUID) ([]*queries.CommentView, error) {
	set := make(map[uuid.UUID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		set[id] = struct{}{}
	}
	return r.list(func(c commentRow) bool {
		_, ok := set[c.ItemID]
		return ok
	}), nil
}

func (r commentReads) list(keep func(commentRow) bool) []*queries.CommentView {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]commentRow, 0)
	for _, c := range r.s.st.comments {
		if keep(c) {
			rows = append(rows, c)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return bytes.Compare(rows[i].ID[:], rows[j].ID[:]) < 0
	})

	views := make([]*queries.CommentView, 0, len(rows))
	for _, c := range rows {
		views = append(views, &queries.CommentView{
			ID:         c.ID,
			ItemID:     c.ItemID,
			Text:       c.Text,
			AuthorName: c.AuthorName,
			Created:    c.CreatedAt,
		})
	}
	return views
}

type userReads struct {
	s *Store
}

func (r userReads) FindByID(_ context.Context, id uuid.UUID) (*queries.UserView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return &queries.UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}, nil
}
