package label

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// LabelDesign is a tenant's customized label layout for one product category.
// It is the aggregate root for design persistence: the embedded document is
// saved as a single versioned blob, never partially.
type LabelDesign struct {
	shared.TenantAggregateRoot
	Category         Category       // Product category this design applies to
	Name             string         // Display name chosen by the tenant
	SourceTemplateID string         // Built-in template this design was cloned from, if any
	Document         DesignDocument // The full layout blob
}

// NewLabelDesign creates a tenant label design from a starting document
func NewLabelDesign(tenantID uuid.UUID, category Category, name string, doc DesignDocument) (*LabelDesign, error) {
	if err := validateDesignName(name); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid product category")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	design := &LabelDesign{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Category:            category,
		Name:                strings.TrimSpace(name),
		Document:            doc,
	}

	design.AddDomainEvent(NewLabelDesignCreatedEvent(design))

	return design, nil
}

// UpdateDocument replaces the layout blob after validating its invariants
func (d *LabelDesign) UpdateDocument(doc DesignDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	d.Document = doc
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewLabelDesignUpdatedEvent(d))

	return nil
}

// Rename updates the display name
func (d *LabelDesign) Rename(name string) error {
	if err := validateDesignName(name); err != nil {
		return err
	}

	d.Name = strings.TrimSpace(name)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetSourceTemplate records which built-in template the design started from
func (d *LabelDesign) SetSourceTemplate(templateID string) {
	d.SourceTemplateID = templateID
}

func validateDesignName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Design name cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Design name cannot exceed 100 characters")
	}
	return nil
}
