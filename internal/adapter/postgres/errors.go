package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/abaevdict/internal/domain"
)

// mapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
func mapError(err error, table string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", table, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", table, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %s: %w", table, pgErr.Detail, domain.ErrDuplicateID)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %s: %w", table, pgErr.Detail, domain.ErrDanglingCrossReference)
		case "23514", "23502": // check_violation, not_null_violation
			return fmt.Errorf("%s: %s: %w", table, pgErr.Message, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s: %w", table, err)
}
