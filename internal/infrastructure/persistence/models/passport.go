package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucamadonia/dpp-backend/internal/domain/passport"
)

// BatchModel is the GORM model for the batches table
type BatchModel struct {
	TenantAggregateModel
	ProductID      uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	BatchNumber    string          `gorm:"column:batch_number;type:varchar(50);not null;index"`
	ProductionDate time.Time       `gorm:"column:production_date;not null"`
	ExpiryDate     *time.Time      `gorm:"column:expiry_date"`
	Quantity       decimal.Decimal `gorm:"type:numeric(15,3);not null;default:0"`
	PackageCount   int             `gorm:"column:package_count;not null;default:0"`
	Status         string          `gorm:"type:varchar(20);not null;default:'draft';index"`
	PublicSlug     string          `gorm:"column:public_slug;type:varchar(32);index"`
	PublishedAt    *time.Time      `gorm:"column:published_at"`
	ArchivedAt     *time.Time      `gorm:"column:archived_at"`
}

// TableName returns the table name for BatchModel
func (BatchModel) TableName() string {
	return "batches"
}

// ToDomain converts BatchModel to a domain Batch
func (m *BatchModel) ToDomain() *passport.Batch {
	return &passport.Batch{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		ProductID:           m.ProductID,
		BatchNumber:         m.BatchNumber,
		ProductionDate:      m.ProductionDate,
		ExpiryDate:          m.ExpiryDate,
		Quantity:            m.Quantity,
		PackageCount:        m.PackageCount,
		Status:              passport.PublicationStatus(m.Status),
		PublicSlug:          m.PublicSlug,
		PublishedAt:         m.PublishedAt,
		ArchivedAt:          m.ArchivedAt,
	}
}

// BatchModelFromDomain creates a BatchModel from a domain Batch
func BatchModelFromDomain(b *passport.Batch) *BatchModel {
	model := &BatchModel{
		ProductID:      b.ProductID,
		BatchNumber:    b.BatchNumber,
		ProductionDate: b.ProductionDate,
		ExpiryDate:     b.ExpiryDate,
		Quantity:       b.Quantity,
		PackageCount:   b.PackageCount,
		Status:         string(b.Status),
		PublicSlug:     b.PublicSlug,
		PublishedAt:    b.PublishedAt,
		ArchivedAt:     b.ArchivedAt,
	}
	model.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	return model
}
