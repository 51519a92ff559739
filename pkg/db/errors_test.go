package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationPostgres(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_orders_display_id"}
	wrapped := fmt.Errorf("create order: %w", pgErr)

	if !IsUniqueViolation(wrapped, "") {
		t.Fatal("expected 23505 to be detected")
	}
	if !IsUniqueViolation(wrapped, "idx_orders_display_id") {
		t.Fatal("expected named constraint to match")
	}
	if IsUniqueViolation(wrapped, "idx_other") {
		t.Fatal("different constraint should not match")
	}
}

func TestIsUniqueViolationNonUniquePGError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}
	if IsUniqueViolation(pgErr, "") {
		t.Fatal("foreign key violation is not a unique violation")
	}
}

func TestIsUniqueViolationSQLiteFallback(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: orders.display_id")
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected sqlite message to be detected")
	}
}

func TestIsUniqueViolationNil(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error is never a violation")
	}
}
