package passport

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Batch DTOs
// =============================================================================

// CreateBatchRequest creates a new draft batch for a product
type CreateBatchRequest struct {
	ProductID      uuid.UUID  `json:"product_id" binding:"required"`
	BatchNumber    string     `json:"batch_number" binding:"required,min=1,max=50"`
	ProductionDate time.Time  `json:"production_date" binding:"required"`
	Quantity       float64    `json:"quantity" binding:"gte=0"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	PackageCount   int        `json:"package_count" binding:"gte=0"`
}

// UpdateBatchRequest updates mutable batch data
type UpdateBatchRequest struct {
	ExpiryDate   *time.Time `json:"expiry_date"`
	PackageCount *int       `json:"package_count" binding:"omitempty,gte=0"`
}

// ListBatchesRequest lists the tenant's batches
type ListBatchesRequest struct {
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search    string     `form:"search"`
	ProductID *uuid.UUID `form:"product_id"`
	Status    string     `form:"status" binding:"omitempty,oneof=draft published archived"`
}

// BatchResponse represents a batch
type BatchResponse struct {
	ID             string     `json:"id"`
	TenantID       string     `json:"tenant_id"`
	ProductID      string     `json:"product_id"`
	BatchNumber    string     `json:"batch_number"`
	ProductionDate time.Time  `json:"production_date"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	Quantity       string     `json:"quantity"`
	PackageCount   int        `json:"package_count"`
	Status         string     `json:"status"`
	PublicSlug     string     `json:"public_slug,omitempty"`
	PublicURL      string     `json:"public_url,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	ArchivedAt     *time.Time `json:"archived_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ListBatchesResponse is a paginated list of batches
type ListBatchesResponse struct {
	Items []BatchResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

// =============================================================================
// Public Passport DTOs
// =============================================================================

// PublicMaterialDTO is one material on the public passport page
type PublicMaterialDTO struct {
	Material      string  `json:"material"`
	Percentage    float64 `json:"percentage"`
	RecycledShare float64 `json:"recycled_share,omitempty"`
}

// PublicCertificationDTO is one certification on the public passport page
type PublicCertificationDTO struct {
	Scheme    string     `json:"scheme"`
	Number    string     `json:"number"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// PublicCarbonDTO is the declared carbon footprint on the public passport page
type PublicCarbonDTO struct {
	KgCO2ePerUnit float64 `json:"kg_co2e_per_unit"`
	Scope         string  `json:"scope"`
	Method        string  `json:"method"`
}

// PublicPassportResponse is the consumer-facing passport for a published
// batch. It contains no tenant-internal identifiers.
type PublicPassportResponse struct {
	Slug            string                   `json:"slug"`
	ProductName     string                   `json:"product_name"`
	Description     string                   `json:"description,omitempty"`
	GTIN            string                   `json:"gtin,omitempty"`
	Category        string                   `json:"category"`
	Manufacturer    string                   `json:"manufacturer,omitempty"`
	CountryOfOrigin string                   `json:"country_of_origin,omitempty"`
	NetWeight       string                   `json:"net_weight,omitempty"`
	GrossWeight     string                   `json:"gross_weight,omitempty"`
	EnergyClass     string                   `json:"energy_class,omitempty"`
	EPRELID         string                   `json:"eprel_id,omitempty"`
	Materials       []PublicMaterialDTO      `json:"materials,omitempty"`
	Certifications  []PublicCertificationDTO `json:"certifications,omitempty"`
	Carbon          *PublicCarbonDTO         `json:"carbon,omitempty"`
	BatchNumber     string                   `json:"batch_number"`
	ProductionDate  time.Time                `json:"production_date"`
	ExpiryDate      *time.Time               `json:"expiry_date,omitempty"`
	PackageCount    int                      `json:"package_count,omitempty"`
	ResponsibleName string                   `json:"responsible_name,omitempty"`
	ResponsibleEORI string                   `json:"responsible_eori,omitempty"`
	PublishedAt     time.Time                `json:"published_at"`
}
