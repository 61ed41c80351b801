// Package storage translates driver errors into the domain error kinds.
package storage

import (
	"errors"

	"fieldservice/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// Wrap classifies err returned by operation. Domain errors pass through
// unchanged and unique violations become ConflictStateError. Everything else,
// deadlocks included, becomes StorageFailureError. Wrap(op, nil) is nil.
//
// Deferred constraints fire at COMMIT, where gorm does not translate errors,
// so the raw driver error is inspected as well.
func Wrap(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case isDomain(err):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return errs.NewConflictStateErrorWithCause(operation, err)
	default:
		return errs.NewStorageFailureError(operation, err)
	}
}

func isDomain(err error) bool {
	for _, target := range []error{
		errs.ErrObjectNotFound,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
		errs.ErrValueIsRequired,
		errs.ErrConflictState,
		errs.ErrStorageFailure,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
