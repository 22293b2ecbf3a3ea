package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/lucamadonia/dpp-backend/internal/domain/catalog"
	"github.com/lucamadonia/dpp-backend/internal/domain/label"
)

// ProductModel is the GORM model for the products table. Materials,
// certifications and carbon data are stored as JSON blobs.
type ProductModel struct {
	TenantAggregateModel
	Name            string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	GTIN            string          `gorm:"type:varchar(14);index"`
	SKU             string          `gorm:"type:varchar(50);not null;index"`
	Category        string          `gorm:"type:varchar(30);not null;index"`
	Manufacturer    string          `gorm:"type:varchar(200)"`
	CountryOfOrigin string          `gorm:"column:country_of_origin;type:varchar(2)"`
	NetWeightKg     decimal.Decimal `gorm:"column:net_weight_kg;type:numeric(12,4);not null;default:0"`
	GrossWeightKg   decimal.Decimal `gorm:"column:gross_weight_kg;type:numeric(12,4);not null;default:0"`
	EnergyClass     string          `gorm:"column:energy_class;type:varchar(1)"`
	EPRELID         string          `gorm:"column:eprel_id;type:varchar(50)"`
	Status          string          `gorm:"type:varchar(20);not null;default:'active'"`
	Materials       string          `gorm:"type:jsonb;not null;default:'[]'"`
	Certifications  string          `gorm:"type:jsonb;not null;default:'[]'"`
	Carbon          string          `gorm:"type:jsonb"`
}

// TableName returns the table name for ProductModel
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts ProductModel to a domain Product
func (m *ProductModel) ToDomain() (*catalog.Product, error) {
	materials := make([]catalog.MaterialEntry, 0)
	if m.Materials != "" {
		if err := json.Unmarshal([]byte(m.Materials), &materials); err != nil {
			return nil, err
		}
	}

	certifications := make([]catalog.Certification, 0)
	if m.Certifications != "" {
		if err := json.Unmarshal([]byte(m.Certifications), &certifications); err != nil {
			return nil, err
		}
	}

	var carbon *catalog.CarbonFootprint
	if m.Carbon != "" {
		carbon = &catalog.CarbonFootprint{}
		if err := json.Unmarshal([]byte(m.Carbon), carbon); err != nil {
			return nil, err
		}
	}

	return &catalog.Product{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Description:         m.Description,
		GTIN:                m.GTIN,
		SKU:                 m.SKU,
		Category:            label.Category(m.Category),
		Manufacturer:        m.Manufacturer,
		CountryOfOrigin:     m.CountryOfOrigin,
		NetWeightKg:         m.NetWeightKg,
		GrossWeightKg:       m.GrossWeightKg,
		EnergyClass:         m.EnergyClass,
		EPRELID:             m.EPRELID,
		Status:              catalog.ProductStatus(m.Status),
		Materials:           materials,
		Certifications:      certifications,
		Carbon:              carbon,
	}, nil
}

// ProductModelFromDomain creates a ProductModel from a domain Product
func ProductModelFromDomain(p *catalog.Product) (*ProductModel, error) {
	materials, err := json.Marshal(p.Materials)
	if err != nil {
		return nil, err
	}
	certifications, err := json.Marshal(p.Certifications)
	if err != nil {
		return nil, err
	}
	carbon := ""
	if p.Carbon != nil {
		raw, err := json.Marshal(p.Carbon)
		if err != nil {
			return nil, err
		}
		carbon = string(raw)
	}

	model := &ProductModel{
		Name:            p.Name,
		Description:     p.Description,
		GTIN:            p.GTIN,
		SKU:             p.SKU,
		Category:        string(p.Category),
		Manufacturer:    p.Manufacturer,
		CountryOfOrigin: p.CountryOfOrigin,
		NetWeightKg:     p.NetWeightKg,
		GrossWeightKg:   p.GrossWeightKg,
		EnergyClass:     p.EnergyClass,
		EPRELID:         p.EPRELID,
		Status:          string(p.Status),
		Materials:       string(materials),
		Certifications:  string(certifications),
		Carbon:          carbon,
	}
	model.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return model, nil
}
