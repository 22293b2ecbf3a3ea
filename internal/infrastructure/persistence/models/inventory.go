package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucamadonia/dpp-backend/internal/domain/inventory"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// StockItemModel is the GORM model for the stock_items table
type StockItemModel struct {
	TenantAggregateModel
	ProductID  uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	BatchID    uuid.UUID       `gorm:"column:batch_id;type:uuid;not null;index"`
	Location   string          `gorm:"type:varchar(50);not null;index"`
	OnHand     decimal.Decimal `gorm:"column:on_hand;type:numeric(15,3);not null;default:0"`
	LastMoveAt *time.Time      `gorm:"column:last_move_at"`
}

// TableName returns the table name for StockItemModel
func (StockItemModel) TableName() string {
	return "stock_items"
}

// ToDomain converts StockItemModel to a domain StockItem
func (m *StockItemModel) ToDomain() *inventory.StockItem {
	return &inventory.StockItem{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		ProductID:           m.ProductID,
		BatchID:             m.BatchID,
		Location:            m.Location,
		OnHand:              m.OnHand,
		LastMoveAt:          m.LastMoveAt,
	}
}

// StockItemModelFromDomain creates a StockItemModel from a domain StockItem
func StockItemModelFromDomain(s *inventory.StockItem) *StockItemModel {
	model := &StockItemModel{
		ProductID:  s.ProductID,
		BatchID:    s.BatchID,
		Location:   s.Location,
		OnHand:     s.OnHand,
		LastMoveAt: s.LastMoveAt,
	}
	model.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	return model
}

// MovementModel is the GORM model for the stock_movements table
type MovementModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID    uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index"`
	StockItemID uuid.UUID       `gorm:"column:stock_item_id;type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	BatchID     uuid.UUID       `gorm:"column:batch_id;type:uuid;not null"`
	Type        string          `gorm:"type:varchar(20);not null"`
	Quantity    decimal.Decimal `gorm:"type:numeric(15,3);not null"`
	After       decimal.Decimal `gorm:"type:numeric(15,3);not null"`
	Reason      string          `gorm:"type:varchar(200)"`
	MovedAt     time.Time       `gorm:"column:moved_at;not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for MovementModel
func (MovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts MovementModel to a domain Movement
func (m *MovementModel) ToDomain() *inventory.Movement {
	return &inventory.Movement{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID:    m.TenantID,
		StockItemID: m.StockItemID,
		ProductID:   m.ProductID,
		BatchID:     m.BatchID,
		Type:        inventory.MovementType(m.Type),
		Quantity:    m.Quantity,
		After:       m.After,
		Reason:      m.Reason,
		MovedAt:     m.MovedAt,
	}
}

// MovementModelFromDomain creates a MovementModel from a domain Movement
func MovementModelFromDomain(mv *inventory.Movement) *MovementModel {
	return &MovementModel{
		ID:          mv.ID,
		TenantID:    mv.TenantID,
		StockItemID: mv.StockItemID,
		ProductID:   mv.ProductID,
		BatchID:     mv.BatchID,
		Type:        string(mv.Type),
		Quantity:    mv.Quantity,
		After:       mv.After,
		Reason:      mv.Reason,
		MovedAt:     mv.MovedAt,
		CreatedAt:   mv.CreatedAt,
		UpdatedAt:   mv.UpdatedAt,
	}
}
