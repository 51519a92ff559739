package validators

import (
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/velureshop/velure-backend/pkg/errors"
)

func TestParseQueryInt(t *testing.T) {
	t.Run("absent uses default", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/orders", nil)
		got, err := ParseQueryInt(r, "limit", 25, 1, 100)
		if err != nil || got != 25 {
			t.Fatalf("got %d, %v; want 25, nil", got, err)
		}
	})

	t.Run("in range passes through", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/orders?limit=40", nil)
		got, err := ParseQueryInt(r, "limit", 25, 1, 100)
		if err != nil || got != 40 {
			t.Fatalf("got %d, %v; want 40, nil", got, err)
		}
	})

	t.Run("non-integer names the parameter", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/orders?limit=lots", nil)
		_, err := ParseQueryInt(r, "limit", 25, 1, 100)
		if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if typed := pkgerrors.As(err); typed.Message() != "limit must be an integer" {
			t.Fatalf("unexpected message %q", typed.Message())
		}
	})

	t.Run("out of range names the bounds", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/orders?limit=9000", nil)
		_, err := ParseQueryInt(r, "limit", 25, 1, 100)
		if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if typed := pkgerrors.As(err); typed.Message() != "limit must be between 1 and 100" {
			t.Fatalf("unexpected message %q", typed.Message())
		}
	})
}
