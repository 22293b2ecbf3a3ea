package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucamadonia/dpp-backend/internal/domain/inventory"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/persistence/models"
)

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindByID finds a stock item by ID
func (r *GormStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	var model models.StockItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a stock item by ID within a specific tenant
func (r *GormStockRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockItem, error) {
	var model models.StockItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBatchAndLocation finds the stock record for a batch at a location
func (r *GormStockRepository) FindByBatchAndLocation(ctx context.Context, tenantID, batchID uuid.UUID, location string) (*inventory.StockItem, error) {
	var model models.StockItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND batch_id = ? AND location = ?",
			tenantID, batchID, strings.ToUpper(strings.TrimSpace(location))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct returns all stock records for a product
func (r *GormStockRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.StockItem, error) {
	var itemModels []models.StockItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("location ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toDomainStockItems(itemModels), nil
}

// FindAll finds all stock items matching the filter
func (r *GormStockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockItem, error) {
	var itemModels []models.StockItemModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StockItemModel{}), filter)

	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toDomainStockItems(itemModels), nil
}

// FindAllForTenant finds all stock items for a specific tenant
func (r *GormStockRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.StockItem, error) {
	var itemModels []models.StockItemModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StockItemModel{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toDomainStockItems(itemModels), nil
}

// Save saves a stock item (insert or update)
func (r *GormStockRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	model := models.StockItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a stock item by ID
func (r *GormStockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StockItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts stock items matching the filter
func (r *GormStockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.StockItemModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForTenant returns the number of stock records in a tenant matching the filter
func (r *GormStockRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.StockItemModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SaveMovement appends a movement record
func (r *GormStockRepository) SaveMovement(ctx context.Context, movement *inventory.Movement) error {
	model := models.MovementModelFromDomain(movement)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindMovements returns the movement history for a stock item
func (r *GormStockRepository) FindMovements(ctx context.Context, tenantID, stockItemID uuid.UUID, filter shared.Filter) ([]inventory.Movement, error) {
	var movementModels []models.MovementModel
	query := r.db.WithContext(ctx).Model(&models.MovementModel{}).
		Where("tenant_id = ? AND stock_item_id = ?", tenantID, stockItemID)

	if typ, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", typ)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, MovementSortFields, "moved_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&movementModels).Error; err != nil {
		return nil, err
	}

	movements := make([]inventory.Movement, len(movementModels))
	for i, model := range movementModels {
		movements[i] = *model.ToDomain()
	}
	return movements, nil
}

// applyFilter applies filter options to the query
func (r *GormStockRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPaginationAndOrder(query, filter, StockItemSortFields)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "batch_id":
			query = query.Where("batch_id = ?", value)
		case "location":
			query = query.Where("location = ?", value)
		}
	}

	return query
}

func toDomainStockItems(itemModels []models.StockItemModel) []inventory.StockItem {
	items := make([]inventory.StockItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items
}

// Ensure GormStockRepository implements StockRepository
var _ inventory.StockRepository = (*GormStockRepository)(nil)
