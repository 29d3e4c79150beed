// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation,
// covering both the postgres and sqlite drivers. The optional column fragment
// narrows the match to a specific constraint.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return false
		}
		return column == "" || strings.Contains(pgErr.ConstraintName, column) || strings.Contains(pgErr.Detail, column)
	}

	// sqlite: "UNIQUE constraint failed: table.column"
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique constraint failed") && !strings.Contains(msg, "duplicate key") {
		return false
	}
	return column == "" || strings.Contains(msg, strings.ToLower(column))
}
