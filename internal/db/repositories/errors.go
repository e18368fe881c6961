// errors.go defines sentinel errors shared by the repository layer and the
// helpers that map driver-level failures onto them.
package repositories

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicate indicates an insert violated a uniqueness constraint
// (e.g., username or email already taken).
var ErrDuplicate = errors.New("duplicate record")

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// mapConstraintError converts a pq unique violation into ErrDuplicate so
// handlers can branch on it without importing the driver.
func mapConstraintError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}
