package infra

import (
	"errors"

	"parkspot/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConflict           RepositoryErrorKind = "CONFLICT"
	KindLockNotAvailable   RepositoryErrorKind = "LOCK_NOT_AVAILABLE"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeForeignKeyViolated = "23503"
	pgErrCodeExclusionViolation = "23P01"
	pgErrCodeLockNotAvailable   = "55P03"
)

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies a low-level database error unless the caller pins a
// kind explicitly.
func WrapRepoErr(msg string, err error, kinds ...RepositoryErrorKind) error {
	kind := KindDBFailure
	if len(kinds) > 0 {
		kind = kinds[0]
	} else if err != nil {
		kind = classify(err)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func classify(err error) RepositoryErrorKind {
	if errors.Is(err, pgx.ErrNoRows) {
		return KindNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return KindDBFailure
	}

	switch pgErr.Code {
	case pgErrCodeUniqueViolation:
		return KindDuplicateKey
	case pgErrCodeForeignKeyViolated:
		return KindForeignKeyViolated
	case pgErrCodeExclusionViolation:
		return KindConflict
	case pgErrCodeLockNotAvailable:
		return KindLockNotAvailable
	default:
		return KindDBFailure
	}
}
