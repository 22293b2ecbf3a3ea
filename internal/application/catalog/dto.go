package catalog

import "time"

// =============================================================================
// Product DTOs
// =============================================================================

// CreateProductRequest creates a new product
type CreateProductRequest struct {
	Name            string  `json:"name" binding:"required,min=1,max=200"`
	SKU             string  `json:"sku" binding:"required,min=1,max=50"`
	Category        string  `json:"category" binding:"required,category"`
	Description     string  `json:"description" binding:"max=2000"`
	GTIN            string  `json:"gtin" binding:"omitempty,min=8,max=14"`
	Manufacturer    string  `json:"manufacturer" binding:"max=200"`
	CountryOfOrigin string  `json:"country_of_origin" binding:"omitempty,len=2"`
	NetWeightKg     float64 `json:"net_weight_kg" binding:"omitempty,gt=0"`
	GrossWeightKg   float64 `json:"gross_weight_kg" binding:"omitempty,gt=0"`
	EnergyClass     string  `json:"energy_class" binding:"omitempty,len=1"`
	EPRELID         string  `json:"eprel_id" binding:"max=20"`
}

// UpdateProductRequest updates product master data
type UpdateProductRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Description     *string  `json:"description" binding:"omitempty,max=2000"`
	GTIN            *string  `json:"gtin" binding:"omitempty,min=8,max=14"`
	Manufacturer    *string  `json:"manufacturer" binding:"omitempty,max=200"`
	CountryOfOrigin *string  `json:"country_of_origin" binding:"omitempty,len=2"`
	NetWeightKg     *float64 `json:"net_weight_kg" binding:"omitempty,gt=0"`
	GrossWeightKg   *float64 `json:"gross_weight_kg" binding:"omitempty,gt=0"`
	EnergyClass     *string  `json:"energy_class" binding:"omitempty,len=1"`
	EPRELID         *string  `json:"eprel_id" binding:"omitempty,max=20"`
}

// ListProductsRequest lists the tenant's products
type ListProductsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status"`
	Country  string `form:"country"`
}

// MaterialEntryDTO is one material in the composition
type MaterialEntryDTO struct {
	Material      string  `json:"material" binding:"required,min=1,max=50"`
	Percentage    float64 `json:"percentage" binding:"required,gt=0,lte=100"`
	RecycledShare float64 `json:"recycled_share" binding:"gte=0,lte=100"`
}

// SetMaterialsRequest replaces the product's material composition
type SetMaterialsRequest struct {
	Materials []MaterialEntryDTO `json:"materials" binding:"required,dive"`
}

// CertificationDTO is one third-party certification
type CertificationDTO struct {
	Scheme    string     `json:"scheme" binding:"required,min=1,max=50"`
	Number    string     `json:"number" binding:"required,min=1,max=100"`
	IssuedAt  time.Time  `json:"issued_at" binding:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// SetCarbonRequest sets the product's declared carbon footprint
type SetCarbonRequest struct {
	KgCO2ePerUnit float64 `json:"kg_co2e_per_unit" binding:"required,gt=0"`
	Scope         string  `json:"scope" binding:"required,min=1,max=50"`
	Method        string  `json:"method" binding:"required,min=1,max=50"`
}

// CarbonDTO mirrors the declared carbon footprint
type CarbonDTO struct {
	KgCO2ePerUnit float64 `json:"kg_co2e_per_unit"`
	Scope         string  `json:"scope"`
	Method        string  `json:"method"`
}

// ProductResponse represents a product
type ProductResponse struct {
	ID              string             `json:"id"`
	TenantID        string             `json:"tenant_id"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	GTIN            string             `json:"gtin,omitempty"`
	SKU             string             `json:"sku"`
	Category        string             `json:"category"`
	Manufacturer    string             `json:"manufacturer,omitempty"`
	CountryOfOrigin string             `json:"country_of_origin,omitempty"`
	NetWeightKg     string             `json:"net_weight_kg,omitempty"`
	GrossWeightKg   string             `json:"gross_weight_kg,omitempty"`
	EnergyClass     string             `json:"energy_class,omitempty"`
	EPRELID         string             `json:"eprel_id,omitempty"`
	Status          string             `json:"status"`
	Materials       []MaterialEntryDTO `json:"materials"`
	Certifications  []CertificationDTO `json:"certifications"`
	Carbon          *CarbonDTO         `json:"carbon,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ListProductsResponse is a paginated list of products
type ListProductsResponse struct {
	Items []ProductResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
}
