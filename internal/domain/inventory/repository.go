package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// StockRepository defines the interface for stock persistence
type StockRepository interface {
	shared.TenantRepository[StockItem]

	// FindByBatchAndLocation finds the stock record for a batch at a location
	FindByBatchAndLocation(ctx context.Context, tenantID, batchID uuid.UUID, location string) (*StockItem, error)

	// FindByProduct returns all stock records for a product
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]StockItem, error)

	// CountForTenant returns the number of stock records in a tenant matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// SaveMovement appends a movement record
	SaveMovement(ctx context.Context, movement *Movement) error

	// FindMovements returns the movement history for a stock item
	FindMovements(ctx context.Context, tenantID, stockItemID uuid.UUID, filter shared.Filter) ([]Movement, error)
}
