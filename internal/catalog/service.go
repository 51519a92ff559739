package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/velureshop/velure-backend/pkg/errors"

	"github.com/velureshop/velure-backend/pkg/db"
	"github.com/velureshop/velure-backend/pkg/db/models"
	"github.com/velureshop/velure-backend/pkg/pagination"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductList, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU          string
	Name         string
	Description  *string
	Price        decimal.Decimal
	IsActive     bool
	PricingTiers []PricingTierInput
}

// PricingTierInput defines one discrete bundle: Price is the total for
// Quantity units, not a per-unit figure.
type PricingTierInput struct {
	Quantity        int
	Price           decimal.Decimal
	DiscountPercent *int
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	SKU          *string
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	IsActive     *bool
	PricingTiers *[]PricingTierInput
}

// ListProductsInput pages the catalog.
type ListProductsInput struct {
	Limit      int
	Cursor     string
	ActiveOnly bool
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo *Repository
	tx   txRunner
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateProductInput(input.SKU, input.Name, input.Price); err != nil {
		return nil, err
	}
	if err := validateTiers(input.PricingTiers); err != nil {
		return nil, err
	}

	product := &models.Product{
		SKU:          strings.TrimSpace(input.SKU),
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		Price:        input.Price,
		IsActive:     input.IsActive,
		PricingTiers: buildTiers(input.PricingTiers),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreateProduct(ctx, product)
		return err
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_products_sku") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err,
				fmt.Sprintf("sku %s already exists", input.SKU))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return NewProductDTO(product), nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if input.SKU != nil && strings.TrimSpace(*input.SKU) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku cannot be empty")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.PricingTiers != nil {
		if err := validateTiers(*input.PricingTiers); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{}
	if input.SKU != nil {
		updates["sku"] = strings.TrimSpace(*input.SKU)
	}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateProduct(ctx, productID, updates); err != nil {
			return err
		}
		if input.PricingTiers != nil {
			return repo.ReplaceTiers(ctx, productID, buildTiers(*input.PricingTiers))
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		if db.IsUniqueViolation(err, "idx_products_sku") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductList, error) {
	rows, next, err := s.repo.ListProducts(ctx, pagination.Params{
		Limit:  input.Limit,
		Cursor: input.Cursor,
	}, input.ActiveOnly)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	list := &ProductList{Products: make([]ProductDTO, 0, len(rows)), NextCursor: next}
	for i := range rows {
		list.Products = append(list.Products, *NewProductDTO(&rows[i]))
	}
	return list, nil
}

func validateProductInput(sku, name string, price decimal.Decimal) error {
	if strings.TrimSpace(sku) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return nil
}

// validateTiers rejects non-positive bundle quantities, duplicate
// quantities and out-of-range display discounts.
func validateTiers(tiers []PricingTierInput) error {
	seen := make(map[int]struct{}, len(tiers))
	for _, tier := range tiers {
		if tier.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "tier quantity must be positive")
		}
		if _, dup := seen[tier.Quantity]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("duplicate tier for quantity %d", tier.Quantity))
		}
		seen[tier.Quantity] = struct{}{}
		if tier.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "tier price cannot be negative")
		}
		if tier.DiscountPercent != nil && (*tier.DiscountPercent < 0 || *tier.DiscountPercent > 100) {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100")
		}
	}
	return nil
}

func buildTiers(inputs []PricingTierInput) []models.PricingTier {
	tiers := make([]models.PricingTier, 0, len(inputs))
	for _, input := range inputs {
		tiers = append(tiers, models.PricingTier{
			Quantity:        input.Quantity,
			Price:           input.Price,
			DiscountPercent: input.DiscountPercent,
		})
	}
	return tiers
}
