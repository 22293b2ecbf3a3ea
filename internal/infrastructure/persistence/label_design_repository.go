package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucamadonia/dpp-backend/internal/domain/label"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/persistence/models"
)

// GormLabelDesignRepository implements LabelDesignRepository using GORM
type GormLabelDesignRepository struct {
	db *gorm.DB
}

// NewGormLabelDesignRepository creates a new GormLabelDesignRepository
func NewGormLabelDesignRepository(db *gorm.DB) *GormLabelDesignRepository {
	return &GormLabelDesignRepository{db: db}
}

// FindByID finds a label design by ID
func (r *GormLabelDesignRepository) FindByID(ctx context.Context, id uuid.UUID) (*label.LabelDesign, error) {
	var model models.LabelDesignModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByIDForTenant finds a label design by ID within a specific tenant
func (r *GormLabelDesignRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*label.LabelDesign, error) {
	var model models.LabelDesignModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByCategory returns the tenant's saved design for a category
func (r *GormLabelDesignRepository) FindByCategory(ctx context.Context, tenantID uuid.UUID, category label.Category) (*label.LabelDesign, error) {
	var model models.LabelDesignModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND category = ?", tenantID, string(category)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds all label designs matching the filter
func (r *GormLabelDesignRepository) FindAll(ctx context.Context, filter shared.Filter) ([]label.LabelDesign, error) {
	var designModels []models.LabelDesignModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LabelDesignModel{}), filter)

	if err := query.Find(&designModels).Error; err != nil {
		return nil, err
	}
	return toDomainDesigns(designModels)
}

// FindAllForTenant finds all label designs for a specific tenant
func (r *GormLabelDesignRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]label.LabelDesign, error) {
	var designModels []models.LabelDesignModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LabelDesignModel{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&designModels).Error; err != nil {
		return nil, err
	}
	return toDomainDesigns(designModels)
}

// Save saves a label design (insert or update)
func (r *GormLabelDesignRepository) Save(ctx context.Context, design *label.LabelDesign) error {
	model, err := models.LabelDesignModelFromDomain(design)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a label design by ID
func (r *GormLabelDesignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LabelDesignModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByCategory removes the tenant's saved design for a category
func (r *GormLabelDesignRepository) DeleteByCategory(ctx context.Context, tenantID uuid.UUID, category label.Category) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND category = ?", tenantID, string(category)).
		Delete(&models.LabelDesignModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total count of label designs matching the filter
func (r *GormLabelDesignRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.LabelDesignModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormLabelDesignRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPaginationAndOrder(query, filter, LabelDesignSortFields)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLabelDesignRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "source_template_id":
			query = query.Where("source_template_id = ?", value)
		}
	}

	return query
}

func toDomainDesigns(designModels []models.LabelDesignModel) ([]label.LabelDesign, error) {
	designs := make([]label.LabelDesign, len(designModels))
	for i, model := range designModels {
		design, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		designs[i] = *design
	}
	return designs, nil
}

// applyPaginationAndOrder applies pagination and validated ordering to a query
func applyPaginationAndOrder(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, allowedFields, "")
	if sortField != "" {
		query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormLabelDesignRepository implements LabelDesignRepository
var _ label.LabelDesignRepository = (*GormLabelDesignRepository)(nil)
