package repos

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrConflict marks an insert rejected by a UNIQUE, NOT NULL, CHECK or FOREIGN KEY constraint.
var ErrConflict = errors.New("integrity constraint violated")

func isConstraint(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		// extended codes keep the primary code in the low byte
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}

func wrap(op string, err error) error {
	if isConstraint(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
