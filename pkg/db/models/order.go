package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velureshop/velure-backend/pkg/enums"
)

// Order is a customer order captured by the intake flow. DisplayID is the
// customer-facing sequential id ("#QE0001"); the uuid primary key stays
// internal.
//
// OrderDate/OrderTime are stored as text rather than a timestamp column:
// historical rows imported from the previous system carry values that do not
// always parse, and the merge path must skip those rows instead of failing at
// scan time.
type Order struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DisplayID    string            `gorm:"column:display_id;not null;uniqueIndex:idx_orders_display_id"`
	CustomerName string            `gorm:"column:customer_name;not null"`
	Phone        string            `gorm:"column:phone;not null;index:idx_orders_phone"`
	City         string            `gorm:"column:city;not null"`
	Address      string            `gorm:"column:address;not null"`
	Status       enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Total        decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	OrderDate    string            `gorm:"column:order_date;not null"`
	OrderTime    string            `gorm:"column:order_time;not null"`

	Items []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
