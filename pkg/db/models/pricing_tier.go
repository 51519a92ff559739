package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingTier captures discrete bundle pricing per product: buying exactly
// Quantity units costs Price in total (not per unit).
type PricingTier struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	// DiscountPercent is display metadata maintained by the product editor;
	// pricing math derives from Price alone.
	DiscountPercent *int      `gorm:"column:discount_percent"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}
