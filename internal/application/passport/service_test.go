package passport

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lucamadonia/dpp-backend/internal/domain/catalog"
	"github.com/lucamadonia/dpp-backend/internal/domain/identity"
	"github.com/lucamadonia/dpp-backend/internal/domain/label"
	"github.com/lucamadonia/dpp-backend/internal/domain/passport"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

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

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByGTIN(ctx context.Context, tenantID uuid.UUID, gtin string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, gtin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, tenantID uuid.UUID, category label.Category, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, category, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

// MockTenantRepository is a mock implementation of identity.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByStatus(ctx context.Context, status identity.TenantStatus, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockPassportCache is a mock implementation of PassportCache
type MockPassportCache struct {
	mock.Mock
}

func (m *MockPassportCache) Get(ctx context.Context, slug string) (*PublicPassportResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PublicPassportResponse), args.Error(1)
}

func (m *MockPassportCache) Set(ctx context.Context, slug string, view *PublicPassportResponse, ttl time.Duration) error {
	args := m.Called(ctx, slug, view, ttl)
	return args.Error(0)
}

func (m *MockPassportCache) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// Test helpers

const testBaseURL = "https://dpp.example.com"

func newTestTenantID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestProductID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func newTestBatchID() uuid.UUID {
	return uuid.MustParse("33333333-3333-3333-3333-333333333333")
}

func createTestTenant() *identity.Tenant {
	tenant, _ := identity.NewTenant("acme", "Acme GmbH")
	tenant.ID = newTestTenantID()
	return tenant
}

func createTestProduct() *catalog.Product {
	product, _ := catalog.NewProduct(newTestTenantID(), "Cordless Drill", "DRL-001", label.CategoryElectronics)
	product.ID = newTestProductID()
	return product
}

func createDraftBatch() *passport.Batch {
	batch, _ := passport.NewBatch(newTestTenantID(), newTestProductID(), "LOT-2026-001",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(500))
	batch.ID = newTestBatchID()
	return batch
}

func createPublishedBatch() *passport.Batch {
	batch := createDraftBatch()
	_ = batch.Publish()
	return batch
}

func newTestService(cache PassportCache) (*PassportService, *MockBatchRepository, *MockProductRepository, *MockTenantRepository) {
	batchRepo := new(MockBatchRepository)
	productRepo := new(MockProductRepository)
	tenantRepo := new(MockTenantRepository)
	service := NewPassportService(batchRepo, productRepo, tenantRepo, cache, 5*time.Minute, testBaseURL, nil)
	return service, batchRepo, productRepo, tenantRepo
}

// Tests

func TestPassportService_CreateBatch_Success(t *testing.T) {
	service, batchRepo, productRepo, _ := newTestService(nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	req := CreateBatchRequest{
		ProductID:      newTestProductID(),
		BatchNumber:    "LOT-2026-001",
		ProductionDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Quantity:       500,
	}

	productRepo.On("FindByIDForTenant", ctx, tenantID, req.ProductID).Return(createTestProduct(), nil)
	batchRepo.On("FindByBatchNumber", ctx, tenantID, req.ProductID, "LOT-2026-001").Return(nil, shared.ErrNotFound)
	batchRepo.On("Save", ctx, mock.AnythingOfType("*passport.Batch")).Return(nil)

	result, err := service.CreateBatch(ctx, tenantID, req)

	assert.NoError(t, err)
	assert.Equal(t, "LOT-2026-001", result.BatchNumber)
	assert.Equal(t, "draft", result.Status)
	assert.Empty(t, result.PublicSlug)
	batchRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestPassportService_CreateBatch_DuplicateNumber(t *testing.T) {
	service, batchRepo, productRepo, _ := newTestService(nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	req := CreateBatchRequest{
		ProductID:      newTestProductID(),
		BatchNumber:    "LOT-2026-001",
		ProductionDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Quantity:       500,
	}

	productRepo.On("FindByIDForTenant", ctx, tenantID, req.ProductID).Return(createTestProduct(), nil)
	batchRepo.On("FindByBatchNumber", ctx, tenantID, req.ProductID, "LOT-2026-001").Return(createDraftBatch(), nil)

	result, err := service.CreateBatch(ctx, tenantID, req)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPassportService_CreateBatch_ProductNotFound(t *testing.T) {
	service, _, productRepo, _ := newTestService(nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	req := CreateBatchRequest{
		ProductID:      newTestProductID(),
		BatchNumber:    "LOT-2026-001",
		ProductionDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	productRepo.On("FindByIDForTenant", ctx, tenantID, req.ProductID).Return(nil, shared.ErrNotFound)

	result, err := service.CreateBatch(ctx, tenantID, req)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestPassportService_PublishBatch_Success(t *testing.T) {
	service, batchRepo, _, tenantRepo := newTestService(nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	batch := createDraftBatch()

	batchRepo.On("FindByIDForTenant", ctx, tenantID, batch.ID).Return(batch, nil)
	tenantRepo.On("FindByID", ctx, tenantID).Return(createTestTenant(), nil)
	batchRepo.On("CountPublishedForTenant", ctx, tenantID).Return(int64(10), nil)
	batchRepo.On("Save", ctx, batch).Return(nil)

	result, err := service.PublishBatch(ctx, tenantID, batch.ID)

	assert.NoError(t, err)
	assert.Equal(t, "published", result.Status)
	assert.NotEmpty(t, result.PublicSlug)
	assert.Equal(t, testBaseURL+"/public/passports/"+result.PublicSlug, result.PublicURL)
	assert.NotNil(t, result.PublishedAt)
	batchRepo.AssertExpectations(t)
}

func TestPassportService_PublishBatch_LimitReached(t *testing.T) {
	service, batchRepo, _, tenantRepo := newTestService(nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	batch := createDraftBatch()
	tenant := createTestTenant()
	tenant.Config.MaxPassports = 100

	batchRepo.On("FindByIDForTenant", ctx, tenantID, batch.ID).Return(batch, nil)
	tenantRepo.On("FindByID", ctx, tenantID).Return(tenant, nil)
	batchRepo.On("CountPublishedForTenant", ctx, tenantID).Return(int64(100), nil)

	result, err := service.PublishBatch(ctx, tenantID, batch.ID)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LIMIT_REACHED", domainErr.Code)
	assert.True(t, batch.IsDraft())
	batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPassportService_PublishBatch_AlreadyPublished(t *testing.T) {
	service, batchRepo, _, tenantRepo := newTestService(nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	batch := createPublishedBatch()

	batchRepo.On("FindByIDForTenant", ctx, tenantID, batch.ID).Return(batch, nil)
	tenantRepo.On("FindByID", ctx, tenantID).Return(createTestTenant(), nil)
	batchRepo.On("CountPublishedForTenant", ctx, tenantID).Return(int64(1), nil)

	result, err := service.PublishBatch(ctx, tenantID, batch.ID)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_PUBLISHED", domainErr.Code)
}

func TestPassportService_ArchiveBatch_InvalidatesCache(t *testing.T) {
	cache := new(MockPassportCache)
	service, batchRepo, _, _ := newTestService(cache)

	ctx := context.Background()
	tenantID := newTestTenantID()
	batch := createPublishedBatch()
	slug := batch.PublicSlug

	batchRepo.On("FindByIDForTenant", ctx, tenantID, batch.ID).Return(batch, nil)
	batchRepo.On("Save", ctx, batch).Return(nil)
	cache.On("Delete", ctx, slug).Return(nil)

	result, err := service.ArchiveBatch(ctx, tenantID, batch.ID)

	assert.NoError(t, err)
	assert.Equal(t, "archived", result.Status)
	assert.Equal(t, slug, result.PublicSlug)
	cache.AssertExpectations(t)
}

func TestPassportService_DeleteBatch_Draft(t *testing.T) {
	service, batchRepo, _, _ := newTestService(nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	batch := createDraftBatch()

	batchRepo.On("FindByIDForTenant", ctx, tenantID, batch.ID).Return(batch, nil)
	batchRepo.On("Delete", ctx, batch.ID).Return(nil)

	err := service.DeleteBatch(ctx, tenantID, batch.ID)

	assert.NoError(t, err)
	batchRepo.AssertExpectations(t)
}

func TestPassportService_DeleteBatch_PublishedRejected(t *testing.T) {
	service, batchRepo, _, _ := newTestService(nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	batch := createPublishedBatch()

	batchRepo.On("FindByIDForTenant", ctx, tenantID, batch.ID).Return(batch, nil)

	err := service.DeleteBatch(ctx, tenantID, batch.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	batchRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPassportService_ListBatches_ByProduct(t *testing.T) {
	service, batchRepo, _, _ := newTestService(nil)

	ctx := context.Background()
	tenantID := newTestTenantID()
	productID := newTestProductID()
	batches := []passport.Batch{*createDraftBatch()}

	batchRepo.On("FindByProduct", ctx, tenantID, productID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["product_id"] == productID.String() && f.Filters["status"] == "draft"
	})).Return(batches, nil)
	batchRepo.On("CountForTenant", ctx, tenantID, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	result, err := service.ListBatches(ctx, tenantID, ListBatchesRequest{
		ProductID: &productID,
		Status:    "draft",
	})

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Total)
	batchRepo.AssertExpectations(t)
}

func TestPassportService_GetPublicPassport_Published(t *testing.T) {
	cache := new(MockPassportCache)
	service, batchRepo, productRepo, tenantRepo := newTestService(cache)

	ctx := context.Background()
	batch := createPublishedBatch()
	product := createTestProduct()
	tenant := createTestTenant()
	slug := batch.PublicSlug

	cache.On("Get", ctx, slug).Return(nil, nil)
	batchRepo.On("FindBySlug", ctx, slug).Return(batch, nil)
	productRepo.On("FindByIDForTenant", ctx, batch.TenantID, batch.ProductID).Return(product, nil)
	tenantRepo.On("FindByID", ctx, batch.TenantID).Return(tenant, nil)
	cache.On("Set", ctx, slug, mock.AnythingOfType("*passport.PublicPassportResponse"), 5*time.Minute).Return(nil)

	result, err := service.GetPublicPassport(ctx, slug)

	assert.NoError(t, err)
	assert.Equal(t, slug, result.Slug)
	assert.Equal(t, "Cordless Drill", result.ProductName)
	assert.Equal(t, "LOT-2026-001", result.BatchNumber)
	assert.Equal(t, "Acme GmbH", result.ResponsibleName)
	cache.AssertExpectations(t)
	batchRepo.AssertExpectations(t)
}

func TestPassportService_GetPublicPassport_CacheHit(t *testing.T) {
	cache := new(MockPassportCache)
	service, batchRepo, _, _ := newTestService(cache)

	ctx := context.Background()
	cached := &PublicPassportResponse{Slug: "abc123", ProductName: "Cordless Drill"}
	cache.On("Get", ctx, "abc123").Return(cached, nil)

	result, err := service.GetPublicPassport(ctx, "abc123")

	assert.NoError(t, err)
	assert.Equal(t, cached, result)
	batchRepo.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything)
}

func TestPassportService_GetPublicPassport_Archived(t *testing.T) {
	service, batchRepo, _, _ := newTestService(nil)

	ctx := context.Background()
	batch := createPublishedBatch()
	_ = batch.Archive()
	slug := batch.PublicSlug

	batchRepo.On("FindBySlug", ctx, slug).Return(batch, nil)

	result, err := service.GetPublicPassport(ctx, slug)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PASSPORT_ARCHIVED", domainErr.Code)
}

func TestPassportService_GetPublicPassport_UnknownSlug(t *testing.T) {
	service, batchRepo, _, _ := newTestService(nil)

	ctx := context.Background()
	batchRepo.On("FindBySlug", ctx, "missing").Return(nil, shared.ErrNotFound)

	result, err := service.GetPublicPassport(ctx, "missing")

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
