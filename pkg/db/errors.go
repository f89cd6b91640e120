package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const pgUniqueViolationCode = "23505"

// IsUniqueViolation reports whether the provided error is a unique-index
// violation from any of the drivers we run against (pgx and lib/pq in
// production, SQLite in repository tests). Uniqueness races are resolved by
// attempting the write and translating this error, never by pre-checking.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolationCode
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolationCode
	}

	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// UniqueViolationColumn extracts the offending column from a unique
// violation, so callers can shape a field-level validation error. Constraint
// names follow the uq_<table>_<column> convention from the migrations.
func UniqueViolationColumn(err error) (string, bool) {
	if !IsUniqueViolation(err) {
		return "", false
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) && pgxErr.ConstraintName != "" {
		return columnFromConstraint(pgxErr.ConstraintName), true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint != "" {
		return columnFromConstraint(pqErr.Constraint), true
	}

	// SQLite reports "UNIQUE constraint failed: users.username".
	msg := err.Error()
	if idx := strings.LastIndex(msg, "."); idx >= 0 && idx < len(msg)-1 {
		return strings.TrimSpace(msg[idx+1:]), true
	}
	return "", true
}

func columnFromConstraint(constraint string) string {
	parts := strings.Split(constraint, "_")
	if len(parts) < 3 || parts[0] != "uq" {
		return constraint
	}
	return strings.Join(parts[2:], "_")
}
