package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velureshop/velure-backend/pkg/db/models"
	"github.com/velureshop/velure-backend/pkg/enums"
)

// PurchaseIntent is a checkout submission before it has been matched
// against the order store.
type PurchaseIntent struct {
	CustomerName string       `json:"customer_name" validate:"required"`
	Phone        string       `json:"phone" validate:"required"`
	City         string       `json:"city"`
	Address      string       `json:"address" validate:"required"`
	Items        []IntentItem `json:"items" validate:"required,min=1,dive"`
}

// IntentItem is a single product selection inside a purchase intent.
type IntentItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// IntakeResult reports how a purchase intent was recorded. Merged is true
// when the line items were appended to a recent order for the same phone
// number instead of opening a new one.
type IntakeResult struct {
	Merged bool       `json:"merged"`
	Order  *OrderView `json:"order"`
}

// OrderView is the API projection of a stored order.
type OrderView struct {
	DisplayID    string            `json:"display_id"`
	CustomerName string            `json:"customer_name"`
	Phone        string            `json:"phone"`
	City         string            `json:"city"`
	Address      string            `json:"address"`
	Status       enums.OrderStatus `json:"status"`
	Total        decimal.Decimal   `json:"total"`
	OrderDate    string            `json:"order_date"`
	OrderTime    string            `json:"order_time"`
	Items        []LineItemView    `json:"items"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// LineItemView is the API projection of a single order line item.
type LineItemView struct {
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// NewOrderView maps a stored order onto its API projection.
func NewOrderView(order *models.Order) *OrderView {
	if order == nil {
		return nil
	}
	view := &OrderView{
		DisplayID:    order.DisplayID,
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		City:         order.City,
		Address:      order.Address,
		Status:       order.Status,
		Total:        order.Total,
		OrderDate:    order.OrderDate,
		OrderTime:    order.OrderTime,
		Items:        make([]LineItemView, 0, len(order.Items)),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, LineItemView{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Qty,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return view
}

// ListFilters narrows admin order listings.
type ListFilters struct {
	Status   *enums.OrderStatus
	Phone    string
	DateFrom *time.Time
	DateTo   *time.Time
}

// OrderSummary is the list-view projection of an order.
type OrderSummary struct {
	DisplayID    string            `json:"display_id"`
	CustomerName string            `json:"customer_name"`
	Phone        string            `json:"phone"`
	City         string            `json:"city"`
	Status       enums.OrderStatus `json:"status"`
	Total        decimal.Decimal   `json:"total"`
	ItemCount    int               `json:"item_count"`
	CreatedAt    time.Time         `json:"created_at"`
}

// OrderList is a cursor page of order summaries.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
