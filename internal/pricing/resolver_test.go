package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/velureshop/velure-backend/pkg/db/models"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func tier(quantity int, price string) models.PricingTier {
	return models.PricingTier{Quantity: quantity, Price: dec(price)}
}

func TestResolveUnitPrice(t *testing.T) {
	fallback := dec("4.00")

	cases := []struct {
		name     string
		tiers    []models.PricingTier
		quantity int
		want     string
	}{
		{
			name:     "exact tier converts total to per-unit",
			tiers:    []models.PricingTier{tier(3, "9.00")},
			quantity: 3,
			want:     "3",
		},
		{
			name:     "no exact tier falls back to standard price",
			tiers:    []models.PricingTier{tier(3, "9.00")},
			quantity: 2,
			want:     "4",
		},
		{
			name:     "empty tiers fall back",
			tiers:    nil,
			quantity: 5,
			want:     "4",
		},
		{
			name:     "unsorted tiers still match",
			tiers:    []models.PricingTier{tier(10, "25.00"), tier(2, "7.00"), tier(5, "15.00")},
			quantity: 5,
			want:     "3",
		},
		{
			name:     "larger quantity than any tier falls back, no nearest-tier pick",
			tiers:    []models.PricingTier{tier(3, "9.00"), tier(5, "12.50")},
			quantity: 7,
			want:     "4",
		},
		{
			name:     "tier price not evenly divisible keeps exact decimal",
			tiers:    []models.PricingTier{tier(3, "10.00")},
			quantity: 3,
			want:     "3.3333333333333333",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveUnitPrice(tc.tiers, tc.quantity, fallback)
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("ResolveUnitPrice = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestResolveUnitPriceNonPositiveQuantityDoesNotPanic(t *testing.T) {
	tiers := []models.PricingTier{tier(0, "9.00")}
	got := ResolveUnitPrice(tiers, 0, dec("4.00"))
	if !got.Equal(dec("4.00")) {
		t.Fatalf("non-positive quantity should resolve to fallback, got %s", got)
	}
	got = ResolveUnitPrice(tiers, -2, dec("4.00"))
	if !got.Equal(dec("4.00")) {
		t.Fatalf("negative quantity should resolve to fallback, got %s", got)
	}
}
