package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/velureshop/velure-backend/pkg/errors"

	"github.com/velureshop/velure-backend/pkg/db/models"
	"github.com/velureshop/velure-backend/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	tiers := `
CREATE TABLE IF NOT EXISTS pricing_tiers (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  discount_percent INTEGER,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(products).Error)
	require.NoError(t, conn.Exec(tiers).Error)
	return conn
}

func TestRepositoryCreateAndFind(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.CreateProduct(ctx, &models.Product{
		SKU:      "VL-001",
		Name:     "Candle",
		Price:    dec("4.00"),
		IsActive: true,
		PricingTiers: []models.PricingTier{
			{Quantity: 5, Price: dec("14.00")},
			{Quantity: 3, Price: dec("9.00")},
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "VL-001", found.SKU)
	require.Len(t, found.PricingTiers, 2)
	// Tiers come back ordered by quantity regardless of insert order.
	assert.Equal(t, 3, found.PricingTiers[0].Quantity)
	assert.Equal(t, 5, found.PricingTiers[1].Quantity)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestRepositoryCreateInactiveProduct(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.CreateProduct(ctx, &models.Product{
		SKU:      "VL-020",
		Name:     "Retired candle",
		Price:    dec("4.00"),
		IsActive: false,
	})
	require.NoError(t, err)

	// The false must survive the insert; a schema default of true must not
	// override it.
	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	active, _, err := repo.ListProducts(ctx, pagination.Params{Limit: 10}, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestRepositoryReplaceTiers(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.CreateProduct(ctx, &models.Product{
		SKU:   "VL-002",
		Name:  "Soap",
		Price: dec("2.50"),
		PricingTiers: []models.PricingTier{
			{Quantity: 2, Price: dec("4.50")},
		},
	})
	require.NoError(t, err)

	err = repo.ReplaceTiers(ctx, created.ID, []models.PricingTier{
		{Quantity: 4, Price: dec("8.00")},
		{Quantity: 6, Price: dec("11.00")},
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, found.PricingTiers, 2)
	assert.Equal(t, 4, found.PricingTiers[0].Quantity)
}

func TestRepositoryDeleteProduct(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.CreateProduct(ctx, &models.Product{
		SKU:   "VL-003",
		Name:  "Mug",
		Price: dec("6.00"),
		PricingTiers: []models.PricingTier{
			{Quantity: 2, Price: dec("11.00")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteProduct(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	var tierCount int64
	require.NoError(t, conn.Model(&models.PricingTier{}).Where("product_id = ?", created.ID).Count(&tierCount).Error)
	assert.Zero(t, tierCount)

	err = repo.DeleteProduct(ctx, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestRepositoryListProducts(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	for i, sku := range []string{"VL-010", "VL-011", "VL-012"} {
		_, err := repo.CreateProduct(ctx, &models.Product{
			SKU:      sku,
			Name:     sku,
			Price:    dec("1.00"),
			IsActive: i != 2,
		})
		require.NoError(t, err)
	}

	all, next, err := repo.ListProducts(ctx, pagination.Params{Limit: 10}, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Empty(t, next)

	active, _, err := repo.ListProducts(ctx, pagination.Params{Limit: 10}, true)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	_, _, err = repo.ListProducts(ctx, pagination.Params{Cursor: "%%%"}, false)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
