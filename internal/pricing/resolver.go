// Package pricing resolves per-unit prices from a product's discrete
// quantity-based pricing tiers.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/velureshop/velure-backend/pkg/db/models"
)

// ResolveUnitPrice returns the per-unit price for buying quantity units.
//
// A tier states "buying exactly tier.Quantity units costs tier.Price in
// total", so an exact-quantity match converts the tier total into a per-unit
// price. Any other quantity falls back to the product's standard price: tiers
// are discrete bundles, and the storefront deliberately does not interpolate
// between them or pick the nearest one.
//
// Pure; never errors for any tier shape. Callers validate quantity > 0 before
// resolving.
func ResolveUnitPrice(tiers []models.PricingTier, quantity int, fallbackUnitPrice decimal.Decimal) decimal.Decimal {
	if quantity <= 0 {
		return fallbackUnitPrice
	}
	for _, tier := range tiers {
		if tier.Quantity == quantity {
			return tier.Price.Div(decimal.NewFromInt(int64(tier.Quantity)))
		}
	}
	return fallbackUnitPrice
}
