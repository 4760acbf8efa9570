package infra

import (
	"errors"
	"log/slog"

	"shareit/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
)

// RepositoryError classifies a storage failure so use cases never inspect driver errors.
type RepositoryError struct {
	Kind       RepositoryErrorKind
	Constraint string
	msg        string
	err        error
}

func (e RepositoryError) Error() string {
	if e.err == nil {
		return string(e.Kind) + ": " + e.msg
	}
	return string(e.Kind) + ": " + e.err.Error()
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr defaults to KindDBFailure when no kind is given.
// Unexpected failures are logged here, once, at the storage boundary.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	re := RepositoryError{Kind: KindDBFailure, msg: msg}
	if len(kind) > 0 {
		re.Kind = kind[0]
	}
	if err != nil {
		re.err = errs.Wrap(err, msg)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			re.Constraint = pgErr.ConstraintName
		}
	}

	if re.Kind == KindDBFailure {
		slog.Error("repository failure", "op", msg, "error", err)
	}
	return re
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	return KindOf(err) == kind
}

// KindOf reports "" for errors that did not come from a repository.
func KindOf(err error) RepositoryErrorKind {
	var re RepositoryError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
