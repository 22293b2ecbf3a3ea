package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// StockItem tracks the on-hand quantity of one product batch at one location.
// It is the aggregate root for stock operations; quantity never goes negative.
type StockItem struct {
	shared.TenantAggregateRoot
	ProductID  uuid.UUID
	BatchID    uuid.UUID
	Location   string
	OnHand     decimal.Decimal
	LastMoveAt *time.Time
}

// NewStockItem creates an empty stock record for a product batch at a location
func NewStockItem(tenantID, productID, batchID uuid.UUID, location string) (*StockItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	if err := validateLocation(location); err != nil {
		return nil, err
	}

	return &StockItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		BatchID:             batchID,
		Location:            strings.ToUpper(strings.TrimSpace(location)),
		OnHand:              decimal.Zero,
	}, nil
}

// Receive adds received quantity to the stock
func (s *StockItem) Receive(quantity decimal.Decimal) (*Movement, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Receive quantity must be positive")
	}

	s.apply(quantity)
	movement := newMovement(s, MovementReceive, quantity)
	s.AddDomainEvent(NewStockMovedEvent(s, movement))

	return movement, nil
}

// Ship removes shipped quantity from the stock
func (s *StockItem) Ship(quantity decimal.Decimal) (*Movement, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Ship quantity must be positive")
	}
	if s.OnHand.LessThan(quantity) {
		return nil, shared.ErrInsufficientStock
	}

	s.apply(quantity.Neg())
	movement := newMovement(s, MovementShip, quantity.Neg())
	s.AddDomainEvent(NewStockMovedEvent(s, movement))

	return movement, nil
}

// Adjust corrects the on-hand quantity by a signed delta, for stock takings
// and damage write-offs. The result must stay non-negative.
func (s *StockItem) Adjust(delta decimal.Decimal, reason string) (*Movement, error) {
	if delta.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment delta cannot be zero")
	}
	if s.OnHand.Add(delta).IsNegative() {
		return nil, shared.ErrInsufficientStock
	}

	s.apply(delta)
	movement := newMovement(s, MovementAdjust, delta)
	movement.Reason = strings.TrimSpace(reason)
	s.AddDomainEvent(NewStockMovedEvent(s, movement))

	return movement, nil
}

func (s *StockItem) apply(delta decimal.Decimal) {
	now := time.Now()
	s.OnHand = s.OnHand.Add(delta)
	s.LastMoveAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
}

// IsEmpty returns true if nothing is on hand
func (s *StockItem) IsEmpty() bool {
	return s.OnHand.IsZero()
}

func validateLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return shared.NewDomainError("INVALID_LOCATION", "Location cannot be empty")
	}
	if len(location) > 50 {
		return shared.NewDomainError("INVALID_LOCATION", "Location cannot exceed 50 characters")
	}
	return nil
}
