package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lucamadonia/dpp-backend/internal/domain/catalog"
	"github.com/lucamadonia/dpp-backend/internal/domain/label"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/persistence/models"
)

// setupProductTestDB creates an in-memory SQLite database for testing
func setupProductTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.ProductModel{}))
	return db
}

func TestGormProductRepository_SaveAndFindBySKU(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	product, err := catalog.NewProduct(tenantID, "Cordless Drill", "drill-18v", label.CategoryElectronics)
	require.NoError(t, err)
	require.NoError(t, product.SetGTIN("4006381333931"))
	require.NoError(t, product.SetCountryOfOrigin("de"))

	require.NoError(t, repo.Save(ctx, product))

	retrieved, err := repo.FindBySKU(ctx, tenantID, "drill-18v")
	require.NoError(t, err)
	assert.Equal(t, product.ID, retrieved.ID)
	assert.Equal(t, "DRILL-18V", retrieved.SKU)
	assert.Equal(t, "4006381333931", retrieved.GTIN)
	assert.Equal(t, "DE", retrieved.CountryOfOrigin)
	assert.Equal(t, label.CategoryElectronics, retrieved.Category)
}

func TestGormProductRepository_MaterialsRoundTrip(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	product, err := catalog.NewProduct(tenantID, "Water Bottle", "BTL-01", label.CategoryHousehold)
	require.NoError(t, err)

	require.NoError(t, product.SetMaterials([]catalog.MaterialEntry{
		{Material: "PET", Percentage: decimal.NewFromInt(70), RecycledShare: decimal.NewFromInt(50)},
		{Material: "PE-LD", Percentage: decimal.NewFromInt(30), RecycledShare: decimal.Zero},
	}))
	require.NoError(t, product.AddCertification(catalog.Certification{
		Scheme:   "Blue Angel",
		Number:   "BA-2026-0042",
		IssuedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, product.SetCarbonFootprint(catalog.CarbonFootprint{
		KgCO2ePerUnit: decimal.RequireFromString("0.84"),
		Scope:         "cradle-to-gate",
		Method:        "ISO 14067",
	}))

	require.NoError(t, repo.Save(ctx, product))

	retrieved, err := repo.FindByIDForTenant(ctx, tenantID, product.ID)
	require.NoError(t, err)

	require.Len(t, retrieved.Materials, 2)
	assert.Equal(t, "PET", retrieved.Materials[0].Material)
	assert.True(t, decimal.NewFromInt(70).Equal(retrieved.Materials[0].Percentage))
	assert.Equal(t, "PET 70%, PE-LD 30%", retrieved.MaterialComposition())

	require.Len(t, retrieved.Certifications, 1)
	assert.Equal(t, "Blue Angel", retrieved.Certifications[0].Scheme)

	require.NotNil(t, retrieved.Carbon)
	assert.True(t, decimal.RequireFromString("0.84").Equal(retrieved.Carbon.KgCO2ePerUnit))
	assert.Equal(t, "cradle-to-gate", retrieved.Carbon.Scope)
}

func TestGormProductRepository_FindByCategory(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()

	toy, err := catalog.NewProduct(tenantID, "Building Blocks", "TOY-01", label.CategoryToys)
	require.NoError(t, err)
	lamp, err := catalog.NewProduct(tenantID, "Desk Lamp", "LMP-01", label.CategoryElectronics)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, toy))
	require.NoError(t, repo.Save(ctx, lamp))

	products, err := repo.FindByCategory(ctx, tenantID, label.CategoryToys, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "TOY-01", products[0].SKU)
}

func TestGormProductRepository_ExistsBySKU(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	product, err := catalog.NewProduct(tenantID, "Desk Lamp", "LMP-01", label.CategoryElectronics)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	exists, err := repo.ExistsBySKU(ctx, tenantID, "lmp-01")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySKU(ctx, uuid.New(), "LMP-01")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormProductRepository_CountForTenant(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	for _, sku := range []string{"P-1", "P-2", "P-3"} {
		product, err := catalog.NewProduct(tenantID, "Product "+sku, sku, label.CategoryGeneral)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, product))
	}

	count, err := repo.CountForTenant(ctx, tenantID, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountForTenant(ctx, uuid.New(), shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
