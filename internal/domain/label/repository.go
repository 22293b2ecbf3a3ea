package label

import (
	"context"

	"github.com/google/uuid"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// LabelDesignRepository persists tenant label designs as versioned blobs
// keyed by tenant and product category
type LabelDesignRepository interface {
	shared.TenantRepository[LabelDesign]

	// FindByCategory returns the tenant's saved design for a category,
	// or shared.ErrNotFound when the tenant has not customized one
	FindByCategory(ctx context.Context, tenantID uuid.UUID, category Category) (*LabelDesign, error)

	// DeleteByCategory removes the tenant's saved design for a category
	DeleteByCategory(ctx context.Context, tenantID uuid.UUID, category Category) error
}
