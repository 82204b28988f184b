package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/heartmarshall/abaevdict/internal/domain"
)

// mapError converts driver errors to domain errors. Context errors pass
// through unmapped.
func mapError(err error, table string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", table, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", table, domain.ErrNotFound)
	}

	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%s: %s: %w", table, sqlErr.Error(), domain.ErrDuplicateID)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%s: %s: %w", table, sqlErr.Error(), domain.ErrDanglingCrossReference)
		case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return fmt.Errorf("%s: %s: %w", table, sqlErr.Error(), domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s: %w", table, err)
}
