package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementReceive MovementType = "receive"
	MovementShip    MovementType = "ship"
	MovementAdjust  MovementType = "adjust"
)

// Movement is the immutable record of one stock change. Quantity is signed:
// positive for receipts and upward adjustments, negative for shipments and
// write-offs. After records the on-hand quantity once applied.
type Movement struct {
	shared.BaseEntity
	TenantID    uuid.UUID
	StockItemID uuid.UUID
	ProductID   uuid.UUID
	BatchID     uuid.UUID
	Type        MovementType
	Quantity    decimal.Decimal
	After       decimal.Decimal
	Reason      string
	MovedAt     time.Time
}

func newMovement(item *StockItem, typ MovementType, quantity decimal.Decimal) *Movement {
	return &Movement{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    item.TenantID,
		StockItemID: item.ID,
		ProductID:   item.ProductID,
		BatchID:     item.BatchID,
		Type:        typ,
		Quantity:    quantity,
		After:       item.OnHand,
		MovedAt:     time.Now(),
	}
}
