package models

import (
	"encoding/json"

	"github.com/lucamadonia/dpp-backend/internal/domain/label"
)

// LabelDesignModel is the GORM model for the label_designs table. The layout
// document is stored as one JSON blob and never decomposed into rows.
type LabelDesignModel struct {
	TenantAggregateModel
	Category         string `gorm:"type:varchar(30);not null;index"`
	Name             string `gorm:"type:varchar(100);not null"`
	SourceTemplateID string `gorm:"column:source_template_id;type:varchar(100)"`
	Document         string `gorm:"type:jsonb;not null"`
}

// TableName returns the table name for LabelDesignModel
func (LabelDesignModel) TableName() string {
	return "label_designs"
}

// ToDomain converts LabelDesignModel to a domain LabelDesign
func (m *LabelDesignModel) ToDomain() (*label.LabelDesign, error) {
	var doc label.DesignDocument
	if err := json.Unmarshal([]byte(m.Document), &doc); err != nil {
		return nil, err
	}

	return &label.LabelDesign{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Category:            label.Category(m.Category),
		Name:                m.Name,
		SourceTemplateID:    m.SourceTemplateID,
		Document:            doc,
	}, nil
}

// LabelDesignModelFromDomain creates a LabelDesignModel from a domain LabelDesign
func LabelDesignModelFromDomain(d *label.LabelDesign) (*LabelDesignModel, error) {
	doc, err := json.Marshal(d.Document)
	if err != nil {
		return nil, err
	}

	model := &LabelDesignModel{
		Category:         string(d.Category),
		Name:             d.Name,
		SourceTemplateID: d.SourceTemplateID,
		Document:         string(doc),
	}
	model.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	return model, nil
}
