package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"club-recruitment/internal/core/domain"
)

const uniqueViolation = "23505"

// notFound maps pgx.ErrNoRows to a domain not-found error.
func notFound(err error, entity, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound(entity, id)
	}
	return err
}

// isUniqueViolation reports whether err is a unique constraint violation on
// constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraint
}
