package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/lucamadonia/dpp-backend/internal/domain/label"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	shared.TenantRepository[Product]

	// FindBySKU finds a product by SKU within a tenant
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*Product, error)

	// FindByGTIN finds a product by GTIN within a tenant
	FindByGTIN(ctx context.Context, tenantID uuid.UUID, gtin string) (*Product, error)

	// FindByCategory finds the tenant's products in a label category
	FindByCategory(ctx context.Context, tenantID uuid.UUID, category label.Category, filter shared.Filter) ([]Product, error)

	// ExistsBySKU checks if a SKU is already taken within a tenant
	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)

	// CountForTenant returns the number of products in a tenant matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
