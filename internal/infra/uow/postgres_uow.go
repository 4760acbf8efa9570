package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"shareit/internal/infra/readstore"
	"shareit/internal/infra/repository"
	sqlc "shareit/internal/infra/sqlc/generated"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/metrics"
	"shareit/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// retryPolicy backs off exponentially from base with up to 20% jitter.
type retryPolicy struct {
	maxRetries int
	base       time.Duration
}

var defaultRetryPolicy = retryPolicy{maxRetries: 3, base: 100 * time.Millisecond}

func (p retryPolicy) retry(err error, attempt int) bool {
	return attempt < p.maxRetries && retryableCode(err) != ""
}

func (p retryPolicy) delay(attempt int) time.Duration {
	wait := p.base << attempt
	if spread := int64(wait / 5); spread > 0 {
		wait += time.Duration(rand.Int64N(spread))
	}
	return wait
}

type PostgresUoW struct {
	pool    *pgxpool.Pool
	q       *sqlc.Queries
	metrics *metrics.Metrics
	policy  retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries, m *metrics.Metrics) shared.UnitOfWork {
	return &PostgresUoW{
		pool:    pool,
		q:       q,
		metrics: m,
		policy:  defaultRetryPolicy,
	}
}

// Within runs fn in a ReadCommitted transaction. The booking decision relies on a
// conditional UPDATE rather than isolation, so only serialization failures and
// deadlocks are retried.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	for attempt := 0; ; attempt++ {
		err := u.attempt(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !u.policy.retry(err, attempt) {
			if attempt > 0 && retryableCode(err) != "" {
				slog.Error("transaction gave up", "attempts", attempt+1, "error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		code := retryableCode(err)
		if u.metrics != nil {
			u.metrics.TxRetried(code)
		}
		wait := u.policy.delay(attempt)
		slog.Warn("retrying transaction",
			"attempt", attempt+1,
			"sqlstate", code,
			"wait_ms", wait.Milliseconds())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return readstore.NewCommandReadStore(u.q, u.pool)
}

func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		// a no-op once committed
		if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rbErr.Error())
		}
	}()

	if err := fn(ctx, &pgTx{dbtx: pgxTx, q: u.q}); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// retryableCode returns the SQLSTATE when err is worth another attempt, or "".
func retryableCode(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}
	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return pgErr.Code
	}
	return ""
}

// pgTx hands out repositories bound to one pgx transaction, built on first use.
type pgTx struct {
	dbtx sqlc.DBTX
	q    *sqlc.Queries

	bookings shared.BookingRepository
	items    shared.ItemRepository
	users    shared.UserRepository
	comments shared.CommentRepository
	reads    shared.CommandReads
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookings == nil {
		t.bookings = repository.NewBookingRepository(t.q, t.dbtx)
	}
	return t.bookings
}

func (t *pgTx) Items() shared.ItemRepository {
	if t.items == nil {
		t.items = repository.NewItemRepository(t.q, t.dbtx)
	}
	return t.items
}

func (t *pgTx) Users() shared.UserRepository {
	if t.users == nil {
		t.users = repository.NewUserRepository(t.q, t.dbtx)
	}
	return t.users
}

func (t *pgTx) Comments() shared.CommentRepository {
	if t.comments == nil {
		t.comments = repository.NewCommentRepository(t.q, t.dbtx)
	}
	return t.comments
}

// Reads inside the transaction see its own uncommitted writes.
func (t *pgTx) Reads() shared.CommandReads {
	if t.reads == nil {
		t.reads = readstore.NewCommandReadStore(t.q, t.dbtx)
	}
	return t.reads
}
