package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "pgx unique", err: &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_username"}, want: true},
		{name: "pgx other", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "pq unique", err: &pq.Error{Code: "23505", Constraint: "uq_users_email"}, want: true},
		{name: "sqlite unique", err: errors.New("UNIQUE constraint failed: users.email"), want: true},
		{name: "plain", err: errors.New("connection refused"), want: false},
		{name: "wrapped pgx", err: fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}), want: true},
	}

	for _, tt := range tests {
		if got := IsUniqueViolation(tt.err); got != tt.want {
			t.Fatalf("%s: expected %v got %v", tt.name, tt.want, got)
		}
	}
}

func TestUniqueViolationColumn(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		column string
		ok     bool
	}{
		{name: "pgx constraint", err: &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_username"}, column: "username", ok: true},
		{name: "pq constraint", err: &pq.Error{Code: "23505", Constraint: "uq_users_email"}, column: "email", ok: true},
		{name: "sqlite message", err: errors.New("UNIQUE constraint failed: users.username"), column: "username", ok: true},
		{name: "not unique", err: errors.New("connection refused"), ok: false},
	}

	for _, tt := range tests {
		column, ok := UniqueViolationColumn(tt.err)
		if ok != tt.ok {
			t.Fatalf("%s: expected ok %v got %v", tt.name, tt.ok, ok)
		}
		if column != tt.column {
			t.Fatalf("%s: expected column %q got %q", tt.name, tt.column, column)
		}
	}
}
