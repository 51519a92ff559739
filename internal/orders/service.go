package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/velureshop/velure-backend/pkg/errors"

	"github.com/velureshop/velure-backend/internal/pricing"
	"github.com/velureshop/velure-backend/pkg/db"
	"github.com/velureshop/velure-backend/pkg/db/models"
	"github.com/velureshop/velure-backend/pkg/enums"
	"github.com/velureshop/velure-backend/pkg/metrics"
	"github.com/velureshop/velure-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ProductReader resolves catalog products for intake pricing.
type ProductReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Locker holds a short per-phone lease while an intent is being matched.
type Locker interface {
	Acquire(ctx context.Context, phone string) func()
}

// Service defines order intake and lifecycle operations.
type Service interface {
	RecordPurchaseIntent(ctx context.Context, intent PurchaseIntent) (*IntakeResult, error)
	GetOrder(ctx context.Context, displayID string) (*OrderView, error)
	ListOrders(ctx context.Context, params ListParams) (*OrderList, error)
	UpdateStatus(ctx context.Context, displayID string, status enums.OrderStatus) (*OrderView, error)
	DeleteOrder(ctx context.Context, displayID string) error
}

// ListParams bundles pagination and filters for admin listings.
type ListParams struct {
	Limit   int
	Cursor  string
	Filters ListFilters
}

// ServiceParams carries the intake service dependencies and tuning.
type ServiceParams struct {
	Repo          Repository
	Tx            txRunner
	Products      ProductReader
	Locks         Locker
	Metrics       *metrics.IntakeMetrics
	MergeWindow   time.Duration
	DisplayPrefix string
	ScanLimit     int
	Now           func() time.Time
}

type service struct {
	repo     Repository
	tx       txRunner
	products ProductReader
	locks    Locker
	metrics  *metrics.IntakeMetrics
	window   time.Duration
	prefix   string
	scan     int
	now      func() time.Time
}

// NewService builds the order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if params.MergeWindow <= 0 {
		return nil, fmt.Errorf("merge window must be positive")
	}
	if params.DisplayPrefix == "" {
		return nil, fmt.Errorf("display prefix required")
	}
	if params.ScanLimit <= 0 {
		return nil, fmt.Errorf("scan limit must be positive")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		products: params.Products,
		locks:    params.Locks,
		metrics:  params.Metrics,
		window:   params.MergeWindow,
		prefix:   params.DisplayPrefix,
		scan:     params.ScanLimit,
		now:      now,
	}, nil
}

// RecordPurchaseIntent prices the submitted items and either folds them
// into a recent order for the same phone number or opens a new order.
// Exactly one write path runs per call.
func (s *service) RecordPurchaseIntent(ctx context.Context, intent PurchaseIntent) (*IntakeResult, error) {
	started := time.Now()

	if err := validateIntent(intent); err != nil {
		s.metrics.Observe(metrics.OutcomeRejected, time.Since(started))
		return nil, err
	}

	items, total, err := s.priceItems(ctx, intent.Items)
	if err != nil {
		s.metrics.Observe(metrics.OutcomeRejected, time.Since(started))
		return nil, err
	}

	if s.locks != nil {
		release := s.locks.Acquire(ctx, intent.Phone)
		defer release()
	}

	now := s.now()
	recent, err := s.repo.FindRecentByPhone(ctx, intent.Phone, s.scan)
	if err != nil {
		s.metrics.Observe(metrics.OutcomeRejected, time.Since(started))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent orders")
	}

	if target := findMergeTarget(recent, now, s.window); target != nil {
		merged, err := s.mergeIntoOrder(ctx, target, intent, items, now)
		if err != nil {
			s.metrics.Observe(metrics.OutcomeRejected, time.Since(started))
			return nil, err
		}
		s.metrics.Observe(metrics.OutcomeMerged, time.Since(started))
		return &IntakeResult{Merged: true, Order: NewOrderView(merged)}, nil
	}

	created, err := s.createOrder(ctx, intent, items, total, now)
	if err != nil {
		s.metrics.Observe(metrics.OutcomeRejected, time.Since(started))
		return nil, err
	}
	s.metrics.Observe(metrics.OutcomeCreated, time.Since(started))
	return &IntakeResult{Merged: false, Order: NewOrderView(created)}, nil
}

func (s *service) priceItems(ctx context.Context, intents []IntentItem) ([]models.OrderLineItem, decimal.Decimal, error) {
	items := make([]models.OrderLineItem, 0, len(intents))
	total := decimal.Zero
	for _, entry := range intents {
		product, err := s.products.FindByID(ctx, entry.ProductID)
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("unknown product %s", entry.ProductID))
			}
			return nil, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if !product.IsActive {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("product %s is not available", product.SKU))
		}

		productID := product.ID
		unit := pricing.ResolveUnitPrice(product.PricingTiers, entry.Quantity, product.Price)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(entry.Quantity)))
		items = append(items, models.OrderLineItem{
			ProductID: &productID,
			Name:      product.Name,
			Qty:       entry.Quantity,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}
	return items, total, nil
}

// mergeIntoOrder appends the priced items to the target order, overwrites
// its contact fields and bumps its time-of-day to now. The stored date is
// left untouched. Totals are recomputed from the full line item set rather
// than incremented, so a retried append cannot drift the total.
func (s *service) mergeIntoOrder(ctx context.Context, target *models.Order, intent PurchaseIntent, items []models.OrderLineItem, now time.Time) (*models.Order, error) {
	var merged *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		for i := range items {
			items[i].OrderID = target.ID
		}
		if err := repo.AppendLineItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append order items")
		}

		all, err := repo.FindLineItemsByOrder(ctx, target.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order items")
		}
		total := decimal.Zero
		for _, item := range all {
			total = total.Add(item.LineTotal)
		}

		updates := map[string]any{
			"customer_name": intent.CustomerName,
			"city":          intent.City,
			"address":       intent.Address,
			"total":         total,
			"order_time":    now.Format(orderTimeLayout),
		}
		if err := repo.UpdateOrder(ctx, target.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update merged order")
		}

		target.CustomerName = intent.CustomerName
		target.City = intent.City
		target.Address = intent.Address
		target.Total = total
		target.OrderTime = now.Format(orderTimeLayout)
		target.Items = all
		merged = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *service) createOrder(ctx context.Context, intent PurchaseIntent, items []models.OrderLineItem, total decimal.Decimal, now time.Time) (*models.Order, error) {
	displayID := ""
	count, err := s.repo.CountOrders(ctx)
	if err != nil {
		// The count is only used to derive the next display id; fall back
		// to a random one instead of failing the checkout.
		displayID = RandomDisplayID(s.prefix)
	} else {
		displayID = NextDisplayID(s.prefix, count)
	}

	order := &models.Order{
		ID:           uuid.New(),
		DisplayID:    displayID,
		CustomerName: intent.CustomerName,
		Phone:        intent.Phone,
		City:         intent.City,
		Address:      intent.Address,
		Status:       enums.OrderStatusPending,
		Total:        total,
		OrderDate:    now.Format(orderDateLayout),
		OrderTime:    now.Format(orderTimeLayout),
		Items:        items,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreateOrder(ctx, order)
		return err
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_orders_display_id") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err,
				fmt.Sprintf("order id %s already exists", displayID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return order, nil
}

func (s *service) GetOrder(ctx context.Context, displayID string) (*OrderView, error) {
	order, err := s.repo.FindByDisplayID(ctx, normalizeDisplayID(displayID))
	if err != nil {
		return nil, err
	}
	return NewOrderView(order), nil
}

func (s *service) ListOrders(ctx context.Context, params ListParams) (*OrderList, error) {
	return s.repo.ListOrders(ctx, paginationParams(params), params.Filters)
}

// UpdateStatus moves an order along the fulfillment lifecycle. Setting the
// current status again is a no-op; any other jump outside the transition
// graph is rejected.
func (s *service) UpdateStatus(ctx context.Context, displayID string, status enums.OrderStatus) (*OrderView, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindByDisplayID(ctx, normalizeDisplayID(displayID))
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return NewOrderView(order), nil
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, status))
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, status); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = status
	return NewOrderView(order), nil
}

func (s *service) DeleteOrder(ctx context.Context, displayID string) error {
	order, err := s.repo.FindByDisplayID(ctx, normalizeDisplayID(displayID))
	if err != nil {
		return err
	}
	if err := s.repo.DeleteOrder(ctx, order.ID); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

func validateIntent(intent PurchaseIntent) error {
	if strings.TrimSpace(intent.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if strings.TrimSpace(intent.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone required")
	}
	if strings.TrimSpace(intent.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address required")
	}
	if len(intent.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}
	for _, item := range intent.Items {
		if item.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
		}
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
		}
	}
	return nil
}

// normalizeDisplayID restores the leading "#" that URL paths usually drop.
func normalizeDisplayID(displayID string) string {
	trimmed := strings.TrimSpace(displayID)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return trimmed
	}
	return "#" + trimmed
}

func paginationParams(params ListParams) pagination.Params {
	return pagination.Params{Limit: params.Limit, Cursor: params.Cursor}
}
