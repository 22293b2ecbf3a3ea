package inventory

import (
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeStockItem = "StockItem"

// Event type constants
const (
	EventTypeStockMoved = "StockMoved"
)

// StockMovedEvent is published for every stock movement
type StockMovedEvent struct {
	shared.BaseDomainEvent
	MovementType MovementType    `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	OnHand       decimal.Decimal `json:"on_hand"`
	Location     string          `json:"location"`
}

// NewStockMovedEvent creates a new StockMovedEvent
func NewStockMovedEvent(item *StockItem, movement *Movement) *StockMovedEvent {
	return &StockMovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMoved, AggregateTypeStockItem, item.ID, item.TenantID),
		MovementType:    movement.Type,
		Quantity:        movement.Quantity,
		OnHand:          item.OnHand,
		Location:        item.Location,
	}
}
