package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucamadonia/dpp-backend/internal/domain/label"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// MaterialEntry describes one material in the product's composition
type MaterialEntry struct {
	Material      string          `json:"material"`       // Material name (PET, cotton, ABS, ...)
	Percentage    decimal.Decimal `json:"percentage"`     // Share of total weight, 0-100
	RecycledShare decimal.Decimal `json:"recycled_share"` // Recycled portion of this material, 0-100
}

// Certification is a third-party certification held by the product
type Certification struct {
	Scheme    string     `json:"scheme"` // e.g. "GOTS", "FSC", "Blue Angel"
	Number    string     `json:"number"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CarbonFootprint captures the product's declared carbon data
type CarbonFootprint struct {
	KgCO2ePerUnit decimal.Decimal `json:"kg_co2e_per_unit"`
	Scope         string          `json:"scope"`  // e.g. "cradle-to-gate"
	Method        string          `json:"method"` // e.g. "ISO 14067", "PEF"
}

// Product represents a sellable article with its passport master data.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.TenantAggregateRoot
	Name            string
	Description     string
	GTIN            string
	SKU             string
	Category        label.Category // Drives which label template family applies
	Manufacturer    string
	CountryOfOrigin string // ISO 3166-1 alpha-2
	NetWeightKg     decimal.Decimal
	GrossWeightKg   decimal.Decimal
	EnergyClass     string // EU energy label class, electronics only
	EPRELID         string
	Status          ProductStatus
	Materials       []MaterialEntry
	Certifications  []Certification
	Carbon          *CarbonFootprint
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, name, sku string, category label.Category) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Invalid product category")
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		SKU:                 strings.ToUpper(sku),
		Category:            category,
		NetWeightKg:         decimal.Zero,
		GrossWeightKg:       decimal.Zero,
		Status:              ProductStatusActive,
		Materials:           make([]MaterialEntry, 0),
		Certifications:      make([]Certification, 0),
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetGTIN sets the product's GTIN
func (p *Product) SetGTIN(gtin string) error {
	gtin = strings.TrimSpace(gtin)
	if gtin != "" {
		if len(gtin) != 8 && len(gtin) != 12 && len(gtin) != 13 && len(gtin) != 14 {
			return shared.NewDomainError("INVALID_GTIN", "GTIN must be 8, 12, 13 or 14 digits")
		}
		for _, r := range gtin {
			if r < '0' || r > '9' {
				return shared.NewDomainError("INVALID_GTIN", "GTIN can only contain digits")
			}
		}
	}

	p.GTIN = gtin
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetManufacturer sets the manufacturer name printed on the label
func (p *Product) SetManufacturer(manufacturer string) error {
	if len(manufacturer) > 200 {
		return shared.NewDomainError("INVALID_MANUFACTURER", "Manufacturer cannot exceed 200 characters")
	}

	p.Manufacturer = strings.TrimSpace(manufacturer)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCountryOfOrigin sets the ISO 3166-1 alpha-2 country code
func (p *Product) SetCountryOfOrigin(country string) error {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country != "" && len(country) != 2 {
		return shared.NewDomainError("INVALID_COUNTRY", "Country of origin must be a 2-letter code")
	}

	p.CountryOfOrigin = country
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetWeights sets net and gross weight in kilograms
func (p *Product) SetWeights(netKg, grossKg decimal.Decimal) error {
	if netKg.IsNegative() || grossKg.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	if !grossKg.IsZero() && grossKg.LessThan(netKg) {
		return shared.NewDomainError("INVALID_WEIGHT", "Gross weight cannot be less than net weight")
	}

	p.NetWeightKg = netKg
	p.GrossWeightKg = grossKg
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetEnergyData sets the EU energy label class and EPREL registration id
func (p *Product) SetEnergyData(energyClass, eprelID string) error {
	energyClass = strings.ToUpper(strings.TrimSpace(energyClass))
	if energyClass != "" {
		switch energyClass {
		case "A", "B", "C", "D", "E", "F", "G":
		default:
			return shared.NewDomainError("INVALID_ENERGY_CLASS", "Energy class must be A through G")
		}
	}

	p.EnergyClass = energyClass
	p.EPRELID = strings.TrimSpace(eprelID)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetMaterials replaces the material composition. Percentages must be positive
// and sum to at most 100.
func (p *Product) SetMaterials(materials []MaterialEntry) error {
	total := decimal.Zero
	for _, m := range materials {
		if strings.TrimSpace(m.Material) == "" {
			return shared.NewDomainError("INVALID_MATERIAL", "Material name cannot be empty")
		}
		if !m.Percentage.IsPositive() {
			return shared.NewDomainError("INVALID_MATERIAL", "Material percentage must be positive")
		}
		if m.RecycledShare.IsNegative() || m.RecycledShare.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_MATERIAL", "Recycled share must be between 0 and 100")
		}
		total = total.Add(m.Percentage)
	}
	if total.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_MATERIAL", "Material percentages cannot exceed 100 in total")
	}

	p.Materials = materials
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// MaterialComposition serializes the composition for label field resolution
// ("PET 70%, PE-LD 30%")
func (p *Product) MaterialComposition() string {
	parts := make([]string, 0, len(p.Materials))
	for _, m := range p.Materials {
		parts = append(parts, m.Material+" "+m.Percentage.String()+"%")
	}
	return strings.Join(parts, ", ")
}

// AddCertification adds a certification to the product
func (p *Product) AddCertification(cert Certification) error {
	if strings.TrimSpace(cert.Scheme) == "" {
		return shared.NewDomainError("INVALID_CERTIFICATION", "Certification scheme cannot be empty")
	}
	if strings.TrimSpace(cert.Number) == "" {
		return shared.NewDomainError("INVALID_CERTIFICATION", "Certification number cannot be empty")
	}
	for _, existing := range p.Certifications {
		if existing.Scheme == cert.Scheme && existing.Number == cert.Number {
			return shared.NewDomainError("DUPLICATE_CERTIFICATION", "Certification already exists")
		}
	}

	p.Certifications = append(p.Certifications, cert)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// RemoveCertification removes a certification by scheme and number
func (p *Product) RemoveCertification(scheme, number string) error {
	for i, cert := range p.Certifications {
		if cert.Scheme == scheme && cert.Number == number {
			p.Certifications = append(p.Certifications[:i], p.Certifications[i+1:]...)
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Certification not found")
}

// SetCarbonFootprint sets the declared carbon data
func (p *Product) SetCarbonFootprint(carbon CarbonFootprint) error {
	if carbon.KgCO2ePerUnit.IsNegative() {
		return shared.NewDomainError("INVALID_CARBON", "Carbon footprint cannot be negative")
	}
	if strings.TrimSpace(carbon.Scope) == "" {
		return shared.NewDomainError("INVALID_CARBON", "Carbon scope cannot be empty")
	}

	p.Carbon = &carbon
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Discontinue marks the product as discontinued
func (p *Product) Discontinue() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("ALREADY_DISCONTINUED", "Product is already discontinued")
	}

	p.Status = ProductStatusDiscontinued
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductDiscontinuedEvent(p))

	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// Validation functions

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, hyphens, and dots")
		}
	}
	return nil
}
