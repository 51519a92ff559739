package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velureshop/velure-backend/pkg/db/models"
	"github.com/velureshop/velure-backend/pkg/enums"
	"github.com/velureshop/velure-backend/pkg/pagination"
)

// Repository defines persistence operations for the order store.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	AppendLineItems(ctx context.Context, items []models.OrderLineItem) error
	FindLineItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderLineItem, error)
	FindByDisplayID(ctx context.Context, displayID string) (*models.Order, error)
	FindRecentByPhone(ctx context.Context, phone string, limit int) ([]models.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	ListOrders(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
}
