package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velureshop/velure-backend/pkg/db/models"
)

// ProductDTO is the catalog product payload returned to clients.
type ProductDTO struct {
	ID           uuid.UUID        `json:"id"`
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Description  *string          `json:"description,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	IsActive     bool             `json:"is_active"`
	PricingTiers []PricingTierDTO `json:"pricing_tiers"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// PricingTierDTO represents one discrete quantity bundle price.
type PricingTierDTO struct {
	ID              uuid.UUID       `json:"id"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent *int            `json:"discount_percent,omitempty"`
}

// ProductList is a page of catalog products.
type ProductList struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// NewProductDTO maps a stored product onto its API payload.
func NewProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:           product.ID,
		SKU:          product.SKU,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price,
		IsActive:     product.IsActive,
		PricingTiers: make([]PricingTierDTO, 0, len(product.PricingTiers)),
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
	for _, tier := range product.PricingTiers {
		dto.PricingTiers = append(dto.PricingTiers, PricingTierDTO{
			ID:              tier.ID,
			Quantity:        tier.Quantity,
			Price:           tier.Price,
			DiscountPercent: tier.DiscountPercent,
		})
	}
	return dto
}
