package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// uniqueViolation reports whether err was raised by a unique index, returning
// whatever the driver says about which one: the constraint name on postgres,
// "table.column" on sqlite.
func uniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return pgErr.ConstraintName, true
		}
		return "", false
	}

	msg := err.Error()
	if _, target, ok := strings.Cut(msg, "UNIQUE constraint failed: "); ok {
		return target, true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(msg, "duplicate key value violates unique constraint") {
		return msg, true
	}
	return "", false
}
