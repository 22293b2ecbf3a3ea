package label

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucamadonia/dpp-backend/internal/domain/label"
)

// =============================================================================
// Design DTOs
// =============================================================================

// SaveDesignRequest replaces the tenant's label design for a category
type SaveDesignRequest struct {
	Name             string               `json:"name" binding:"required,min=1,max=100"`
	SourceTemplateID string               `json:"source_template_id"`
	Document         label.DesignDocument `json:"document" binding:"required"`
}

// DesignResponse is the tenant-facing view of a label design. Customized is
// false when the document is the built-in default for the category.
type DesignResponse struct {
	ID               string               `json:"id,omitempty"`
	Category         string               `json:"category"`
	Name             string               `json:"name"`
	SourceTemplateID string               `json:"source_template_id,omitempty"`
	Document         label.DesignDocument `json:"document"`
	Customized       bool                 `json:"customized"`
	Version          int                  `json:"version,omitempty"`
	UpdatedAt        *time.Time           `json:"updated_at,omitempty"`
}

// ListDesignsResponse lists the tenant's saved designs
type ListDesignsResponse struct {
	Items []DesignResponse `json:"items"`
	Total int64            `json:"total"`
}

// =============================================================================
// Template and field catalog DTOs
// =============================================================================

// TemplateResponse is one built-in template preset
type TemplateResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Variant     string                `json:"variant"`
	IsDefault   bool                  `json:"is_default"`
	Design      *label.DesignDocument `json:"design,omitempty"`
}

// FieldResponse is one bindable field from the field catalog
type FieldResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// =============================================================================
// Rendering DTOs
// =============================================================================

// RenderLabelRequest renders the label PDF for a batch
type RenderLabelRequest struct {
	BatchID uuid.UUID `json:"batch_id" binding:"required"`
}

// RenderLabelResponse carries the stored artifact location
type RenderLabelResponse struct {
	URL          string    `json:"url"`
	ExpiresAt    time.Time `json:"expires_at"`
	SizeBytes    int       `json:"size_bytes"`
	PageWidthPt  float64   `json:"page_width_pt"`
	PageHeightPt float64   `json:"page_height_pt"`
	RenderMs     int64     `json:"render_ms"`
}

// PreviewRequest produces the HTML preview for the editor. When Document is
// nil the tenant's saved design (or the category default) is used.
type PreviewRequest struct {
	Category string                `json:"category" binding:"required,category"`
	BatchID  *uuid.UUID            `json:"batch_id"`
	Document *label.DesignDocument `json:"document"`
}

// PreviewResponse is the rendered editor preview
type PreviewResponse struct {
	HTML         string  `json:"html"`
	PageWidthPt  float64 `json:"page_width_pt"`
	PageHeightPt float64 `json:"page_height_pt"`
}
