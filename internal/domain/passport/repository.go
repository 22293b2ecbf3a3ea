package passport

import (
	"context"

	"github.com/google/uuid"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// BatchRepository defines the interface for batch persistence
type BatchRepository interface {
	shared.TenantRepository[Batch]

	// FindByProduct returns the tenant's batches for a product
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]Batch, error)

	// FindByBatchNumber finds a batch by product and batch number
	FindByBatchNumber(ctx context.Context, tenantID, productID uuid.UUID, batchNumber string) (*Batch, error)

	// FindBySlug finds a batch by its public slug, regardless of tenant.
	// Used by the unauthenticated passport page.
	FindBySlug(ctx context.Context, slug string) (*Batch, error)

	// CountForTenant returns the number of batches in a tenant matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountPublishedForTenant returns the number of published passports
	CountPublishedForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
