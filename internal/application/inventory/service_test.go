package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lucamadonia/dpp-backend/internal/domain/inventory"
	"github.com/lucamadonia/dpp-backend/internal/domain/passport"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// MockStockRepository is a mock implementation of inventory.StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.StockItem, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockRepository) FindByBatchAndLocation(ctx context.Context, tenantID, batchID uuid.UUID, location string) (*inventory.StockItem, error) {
	args := m.Called(ctx, tenantID, batchID, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.StockItem, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockRepository) SaveMovement(ctx context.Context, movement *inventory.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockRepository) FindMovements(ctx context.Context, tenantID, stockItemID uuid.UUID, filter shared.Filter) ([]inventory.Movement, error) {
	args := m.Called(ctx, tenantID, stockItemID, filter)
	return args.Get(0).([]inventory.Movement), args.Error(1)
}

// MockBatchRepository is a mock implementation of passport.BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*passport.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*passport.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*passport.Batch, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*passport.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]passport.Batch, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]passport.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]passport.Batch, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]passport.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]passport.Batch, error) {
	args := m.Called(ctx, tenantID, productID, filter)
	return args.Get(0).([]passport.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByBatchNumber(ctx context.Context, tenantID, productID uuid.UUID, batchNumber string) (*passport.Batch, error) {
	args := m.Called(ctx, tenantID, productID, batchNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*passport.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindBySlug(ctx context.Context, slug string) (*passport.Batch, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*passport.Batch), args.Error(1)
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *passport.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBatchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBatchRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBatchRepository) CountPublishedForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// Test helpers

func newTestTenantID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestProductID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func newTestBatchID() uuid.UUID {
	return uuid.MustParse("33333333-3333-3333-3333-333333333333")
}

func createTestBatch() *passport.Batch {
	batch, _ := passport.NewBatch(newTestTenantID(), newTestProductID(), "LOT-2026-001",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(500))
	batch.ID = newTestBatchID()
	return batch
}

func createStockItem(onHand int64) *inventory.StockItem {
	item, _ := inventory.NewStockItem(newTestTenantID(), newTestProductID(), newTestBatchID(), "MAIN")
	if onHand > 0 {
		_, _ = item.Receive(decimal.NewFromInt(onHand))
	}
	return item
}

func newTestService() (*InventoryService, *MockStockRepository, *MockBatchRepository) {
	stockRepo := new(MockStockRepository)
	batchRepo := new(MockBatchRepository)
	return NewInventoryService(stockRepo, batchRepo, nil), stockRepo, batchRepo
}

// Tests

func TestInventoryService_ReceiveStock_CreatesRecordOnFirstReceipt(t *testing.T) {
	service, stockRepo, batchRepo := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()
	batchID := newTestBatchID()

	stockRepo.On("FindByBatchAndLocation", ctx, tenantID, batchID, "MAIN").Return(nil, shared.ErrNotFound)
	batchRepo.On("FindByIDForTenant", ctx, tenantID, batchID).Return(createTestBatch(), nil)
	stockRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockItem")).Return(nil)
	stockRepo.On("SaveMovement", ctx, mock.AnythingOfType("*inventory.Movement")).Return(nil)

	result, err := service.ReceiveStock(ctx, tenantID, ReceiveStockRequest{
		BatchID:  batchID,
		Location: "MAIN",
		Quantity: 250,
	})

	assert.NoError(t, err)
	assert.Equal(t, "250", result.Stock.OnHand)
	assert.Equal(t, "receive", result.Movement.Type)
	assert.Equal(t, "250", result.Movement.After)
	stockRepo.AssertExpectations(t)
	batchRepo.AssertExpectations(t)
}

func TestInventoryService_ReceiveStock_AddsToExistingRecord(t *testing.T) {
	service, stockRepo, batchRepo := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()
	batchID := newTestBatchID()
	item := createStockItem(100)

	stockRepo.On("FindByBatchAndLocation", ctx, tenantID, batchID, "MAIN").Return(item, nil)
	stockRepo.On("Save", ctx, item).Return(nil)
	stockRepo.On("SaveMovement", ctx, mock.AnythingOfType("*inventory.Movement")).Return(nil)

	result, err := service.ReceiveStock(ctx, tenantID, ReceiveStockRequest{
		BatchID:  batchID,
		Location: "MAIN",
		Quantity: 50,
	})

	assert.NoError(t, err)
	assert.Equal(t, "150", result.Stock.OnHand)
	batchRepo.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryService_ReceiveStock_BatchNotFound(t *testing.T) {
	service, stockRepo, batchRepo := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()
	batchID := newTestBatchID()

	stockRepo.On("FindByBatchAndLocation", ctx, tenantID, batchID, "MAIN").Return(nil, shared.ErrNotFound)
	batchRepo.On("FindByIDForTenant", ctx, tenantID, batchID).Return(nil, shared.ErrNotFound)

	result, err := service.ReceiveStock(ctx, tenantID, ReceiveStockRequest{
		BatchID:  batchID,
		Location: "MAIN",
		Quantity: 10,
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestInventoryService_ShipStock_Success(t *testing.T) {
	service, stockRepo, _ := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()
	batchID := newTestBatchID()
	item := createStockItem(100)

	stockRepo.On("FindByBatchAndLocation", ctx, tenantID, batchID, "MAIN").Return(item, nil)
	stockRepo.On("Save", ctx, item).Return(nil)
	stockRepo.On("SaveMovement", ctx, mock.AnythingOfType("*inventory.Movement")).Return(nil)

	result, err := service.ShipStock(ctx, tenantID, ShipStockRequest{
		BatchID:  batchID,
		Location: "MAIN",
		Quantity: 30,
	})

	assert.NoError(t, err)
	assert.Equal(t, "70", result.Stock.OnHand)
	assert.Equal(t, "ship", result.Movement.Type)
	assert.Equal(t, "-30", result.Movement.Quantity)
	stockRepo.AssertExpectations(t)
}

func TestInventoryService_ShipStock_Insufficient(t *testing.T) {
	service, stockRepo, _ := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()
	batchID := newTestBatchID()
	item := createStockItem(10)

	stockRepo.On("FindByBatchAndLocation", ctx, tenantID, batchID, "MAIN").Return(item, nil)

	result, err := service.ShipStock(ctx, tenantID, ShipStockRequest{
		BatchID:  batchID,
		Location: "MAIN",
		Quantity: 50,
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Equal(t, "10", item.OnHand.String())
	stockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInventoryService_ShipStock_NoRecord(t *testing.T) {
	service, stockRepo, _ := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()
	batchID := newTestBatchID()

	stockRepo.On("FindByBatchAndLocation", ctx, tenantID, batchID, "MAIN").Return(nil, shared.ErrNotFound)

	result, err := service.ShipStock(ctx, tenantID, ShipStockRequest{
		BatchID:  batchID,
		Location: "MAIN",
		Quantity: 5,
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestInventoryService_AdjustStock_DownwardCorrection(t *testing.T) {
	service, stockRepo, _ := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()
	batchID := newTestBatchID()
	item := createStockItem(50)

	stockRepo.On("FindByBatchAndLocation", ctx, tenantID, batchID, "MAIN").Return(item, nil)
	stockRepo.On("Save", ctx, item).Return(nil)
	stockRepo.On("SaveMovement", ctx, mock.AnythingOfType("*inventory.Movement")).Return(nil)

	result, err := service.AdjustStock(ctx, tenantID, AdjustStockRequest{
		BatchID:  batchID,
		Location: "MAIN",
		Delta:    -3,
		Reason:   "damaged in transit",
	})

	assert.NoError(t, err)
	assert.Equal(t, "47", result.Stock.OnHand)
	assert.Equal(t, "adjust", result.Movement.Type)
	assert.Equal(t, "damaged in transit", result.Movement.Reason)
	stockRepo.AssertExpectations(t)
}

func TestInventoryService_AdjustStock_WouldGoNegative(t *testing.T) {
	service, stockRepo, _ := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()
	batchID := newTestBatchID()
	item := createStockItem(5)

	stockRepo.On("FindByBatchAndLocation", ctx, tenantID, batchID, "MAIN").Return(item, nil)

	result, err := service.AdjustStock(ctx, tenantID, AdjustStockRequest{
		BatchID:  batchID,
		Location: "MAIN",
		Delta:    -10,
		Reason:   "stocktake",
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Equal(t, "5", item.OnHand.String())
}

func TestInventoryService_ListMovements_OrdersByMoveTime(t *testing.T) {
	service, stockRepo, _ := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()
	item := createStockItem(100)
	stockItemID := item.ID

	stockRepo.On("FindByIDForTenant", ctx, tenantID, stockItemID).Return(item, nil)
	stockRepo.On("FindMovements", ctx, tenantID, stockItemID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.OrderBy == "moved_at"
	})).Return([]inventory.Movement{}, nil)

	result, err := service.ListMovements(ctx, tenantID, stockItemID, ListMovementsRequest{})

	assert.NoError(t, err)
	assert.Empty(t, result.Items)
	stockRepo.AssertExpectations(t)
}

func TestInventoryService_GetStockItem_NotFound(t *testing.T) {
	service, stockRepo, _ := newTestService()

	ctx := context.Background()
	tenantID := newTestTenantID()
	stockItemID := uuid.New()

	stockRepo.On("FindByIDForTenant", ctx, tenantID, stockItemID).Return(nil, shared.ErrNotFound)

	result, err := service.GetStockItem(ctx, tenantID, stockItemID)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
