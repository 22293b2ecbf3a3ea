package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lucamadonia/dpp-backend/internal/domain/inventory"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/persistence/models"
)

// setupStockTestDB creates an in-memory SQLite database for testing
func setupStockTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.StockItemModel{}, &models.MovementModel{}))
	return db
}

func TestGormStockRepository_SaveAndFindByBatchAndLocation(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewGormStockRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	batchID := uuid.New()

	item, err := inventory.NewStockItem(tenantID, uuid.New(), batchID, "wh-main")
	require.NoError(t, err)

	_, err = item.Receive(decimal.NewFromInt(120))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, item))

	retrieved, err := repo.FindByBatchAndLocation(ctx, tenantID, batchID, "wh-main")
	require.NoError(t, err)
	assert.Equal(t, item.ID, retrieved.ID)
	assert.Equal(t, "WH-MAIN", retrieved.Location)
	assert.True(t, decimal.NewFromInt(120).Equal(retrieved.OnHand))
	assert.NotNil(t, retrieved.LastMoveAt)

	_, err = repo.FindByBatchAndLocation(ctx, tenantID, batchID, "WH-OTHER")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormStockRepository_FindByProduct(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewGormStockRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	productID := uuid.New()

	itemA, err := inventory.NewStockItem(tenantID, productID, uuid.New(), "WH-B")
	require.NoError(t, err)
	itemB, err := inventory.NewStockItem(tenantID, productID, uuid.New(), "WH-A")
	require.NoError(t, err)
	other, err := inventory.NewStockItem(tenantID, uuid.New(), uuid.New(), "WH-A")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, itemA))
	require.NoError(t, repo.Save(ctx, itemB))
	require.NoError(t, repo.Save(ctx, other))

	items, err := repo.FindByProduct(ctx, tenantID, productID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "WH-A", items[0].Location)
	assert.Equal(t, "WH-B", items[1].Location)
}

func TestGormStockRepository_MovementHistory(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewGormStockRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	item, err := inventory.NewStockItem(tenantID, uuid.New(), uuid.New(), "WH-MAIN")
	require.NoError(t, err)

	received, err := item.Receive(decimal.NewFromInt(100))
	require.NoError(t, err)
	shipped, err := item.Ship(decimal.NewFromInt(30))
	require.NoError(t, err)
	adjusted, err := item.Adjust(decimal.NewFromInt(-5), "damaged in transit")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, item))
	require.NoError(t, repo.SaveMovement(ctx, received))
	require.NoError(t, repo.SaveMovement(ctx, shipped))
	require.NoError(t, repo.SaveMovement(ctx, adjusted))

	movements, err := repo.FindMovements(ctx, tenantID, item.ID, shared.Filter{
		Page: 1, PageSize: 10, OrderBy: "moved_at", OrderDir: "asc",
	})
	require.NoError(t, err)
	require.Len(t, movements, 3)

	assert.Equal(t, inventory.MovementReceive, movements[0].Type)
	assert.True(t, decimal.NewFromInt(100).Equal(movements[0].After))
	assert.Equal(t, inventory.MovementShip, movements[1].Type)
	assert.True(t, decimal.NewFromInt(-30).Equal(movements[1].Quantity))
	assert.Equal(t, inventory.MovementAdjust, movements[2].Type)
	assert.Equal(t, "damaged in transit", movements[2].Reason)
	assert.True(t, decimal.NewFromInt(65).Equal(movements[2].After))
}

func TestGormStockRepository_MovementFilterByType(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewGormStockRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	item, err := inventory.NewStockItem(tenantID, uuid.New(), uuid.New(), "WH-MAIN")
	require.NoError(t, err)

	received, err := item.Receive(decimal.NewFromInt(50))
	require.NoError(t, err)
	shipped, err := item.Ship(decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, repo.SaveMovement(ctx, received))
	require.NoError(t, repo.SaveMovement(ctx, shipped))

	filter := shared.DefaultFilter()
	filter.Filters["type"] = string(inventory.MovementShip)

	movements, err := repo.FindMovements(ctx, tenantID, item.ID, filter)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, inventory.MovementShip, movements[0].Type)
}
