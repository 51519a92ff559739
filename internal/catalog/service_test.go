package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/velureshop/velure-backend/pkg/errors"

	"github.com/velureshop/velure-backend/pkg/db/models"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestValidateTiers(t *testing.T) {
	pct := func(v int) *int { return &v }

	t.Run("valid set", func(t *testing.T) {
		err := validateTiers([]PricingTierInput{
			{Quantity: 3, Price: dec("9.00"), DiscountPercent: pct(25)},
			{Quantity: 5, Price: dec("14.00")},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("duplicate quantity", func(t *testing.T) {
		err := validateTiers([]PricingTierInput{
			{Quantity: 3, Price: dec("9.00")},
			{Quantity: 3, Price: dec("8.00")},
		})
		if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error for duplicate quantity, got %v", err)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		err := validateTiers([]PricingTierInput{{Quantity: 0, Price: dec("9.00")}})
		if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("negative price", func(t *testing.T) {
		err := validateTiers([]PricingTierInput{{Quantity: 2, Price: dec("-1.00")}})
		if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("discount out of range", func(t *testing.T) {
		err := validateTiers([]PricingTierInput{{Quantity: 2, Price: dec("5.00"), DiscountPercent: pct(140)}})
		if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestValidateProductInput(t *testing.T) {
	if err := validateProductInput("VL-001", "Candle", dec("4.00")); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	if err := validateProductInput("  ", "Candle", dec("4.00")); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for blank sku, got %v", err)
	}
	if err := validateProductInput("VL-001", "", dec("4.00")); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	if err := validateProductInput("VL-001", "Candle", dec("-0.01")); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for negative price, got %v", err)
	}
}

func TestNewProductDTO(t *testing.T) {
	pct := 25
	product := &models.Product{
		ID:       uuid.New(),
		SKU:      "VL-001",
		Name:     "Candle",
		Price:    dec("4.00"),
		IsActive: true,
		PricingTiers: []models.PricingTier{
			{ID: uuid.New(), Quantity: 3, Price: dec("9.00"), DiscountPercent: &pct},
		},
	}

	dto := NewProductDTO(product)
	if dto.SKU != "VL-001" || dto.Name != "Candle" {
		t.Fatalf("unexpected mapping: %+v", dto)
	}
	if len(dto.PricingTiers) != 1 {
		t.Fatalf("expected one tier, got %d", len(dto.PricingTiers))
	}
	tier := dto.PricingTiers[0]
	if tier.Quantity != 3 || !tier.Price.Equal(dec("9.00")) || tier.DiscountPercent == nil || *tier.DiscountPercent != 25 {
		t.Fatalf("unexpected tier mapping: %+v", tier)
	}

	if NewProductDTO(nil) != nil {
		t.Fatal("nil product must map to nil DTO")
	}
}
