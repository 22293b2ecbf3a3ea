package label

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucamadonia/dpp-backend/internal/domain/catalog"
	"github.com/lucamadonia/dpp-backend/internal/domain/identity"
	"github.com/lucamadonia/dpp-backend/internal/domain/label"
	"github.com/lucamadonia/dpp-backend/internal/domain/passport"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
	"github.com/lucamadonia/dpp-backend/internal/infrastructure/rendering"
)

// ArtifactStorage stores rendered label PDFs and hands out download URLs
type ArtifactStorage interface {
	// Upload stores an artifact under the given key
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// GenerateDownloadURL returns a time-limited URL for an artifact.
	// A non-positive expiresIn uses the storage default.
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes an artifact
	DeleteObject(ctx context.Context, key string) error
}

// LabelService handles label design and rendering operations
type LabelService struct {
	designRepo    label.LabelDesignRepository
	batchRepo     passport.BatchRepository
	productRepo   catalog.ProductRepository
	tenantRepo    identity.TenantRepository
	registry      *label.Registry
	htmlBuilder   *rendering.HTMLBuilder
	pdfRenderer   rendering.PDFRenderer
	artifacts     ArtifactStorage
	publicBaseURL string
	renderTimeout time.Duration
	logger        *zap.Logger
}

// NewLabelService creates a new LabelService
func NewLabelService(
	designRepo label.LabelDesignRepository,
	batchRepo passport.BatchRepository,
	productRepo catalog.ProductRepository,
	tenantRepo identity.TenantRepository,
	htmlBuilder *rendering.HTMLBuilder,
	pdfRenderer rendering.PDFRenderer,
	artifacts ArtifactStorage,
	publicBaseURL string,
	renderTimeout time.Duration,
	logger *zap.Logger,
) *LabelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelService{
		designRepo:    designRepo,
		batchRepo:     batchRepo,
		productRepo:   productRepo,
		tenantRepo:    tenantRepo,
		registry:      label.NewRegistry(),
		htmlBuilder:   htmlBuilder,
		pdfRenderer:   pdfRenderer,
		artifacts:     artifacts,
		publicBaseURL: publicBaseURL,
		renderTimeout: renderTimeout,
		logger:        logger,
	}
}

// =============================================================================
// Design Operations
// =============================================================================

// GetDesign returns the tenant's design for a category, falling back to the
// built-in default when the tenant has not customized one
func (s *LabelService) GetDesign(ctx context.Context, tenantID uuid.UUID, category string) (*DesignResponse, error) {
	cat := label.Category(category)
	if !cat.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid product category")
	}

	design, err := s.designRepo.FindByCategory(ctx, tenantID, cat)
	if err == nil {
		return toDesignResponse(design), nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to get design: %w", err)
	}

	doc, ok := s.registry.DefaultDesignForGroup(cat)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "No default template for this category")
	}

	return &DesignResponse{
		Category:   string(cat),
		Name:       "Default",
		Document:   doc,
		Customized: false,
	}, nil
}

// SaveDesign creates or replaces the tenant's design for a category
func (s *LabelService) SaveDesign(ctx context.Context, tenantID uuid.UUID, category string, req SaveDesignRequest) (*DesignResponse, error) {
	cat := label.Category(category)
	if !cat.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid product category")
	}

	design, err := s.designRepo.FindByCategory(ctx, tenantID, cat)
	switch {
	case err == nil:
		if err := design.Rename(req.Name); err != nil {
			return nil, err
		}
		if err := design.UpdateDocument(req.Document); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		design, err = label.NewLabelDesign(tenantID, cat, req.Name, req.Document)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to get design: %w", err)
	}

	if req.SourceTemplateID != "" {
		if _, ok := s.registry.ByID(req.SourceTemplateID); !ok {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown source template")
		}
		design.SetSourceTemplate(req.SourceTemplateID)
	}

	if err := s.designRepo.Save(ctx, design); err != nil {
		return nil, fmt.Errorf("failed to save design: %w", err)
	}

	s.logger.Info("label design saved",
		zap.String("id", design.ID.String()),
		zap.String("category", string(design.Category)),
		zap.Int("version", design.GetVersion()))

	return toDesignResponse(design), nil
}

// ResetDesign removes the tenant's customization for a category, reverting to
// the built-in default. Resetting an uncustomized category is a no-op.
func (s *LabelService) ResetDesign(ctx context.Context, tenantID uuid.UUID, category string) (*DesignResponse, error) {
	cat := label.Category(category)
	if !cat.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid product category")
	}

	if err := s.designRepo.DeleteByCategory(ctx, tenantID, cat); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to reset design: %w", err)
	}

	doc, ok := s.registry.DefaultDesignForGroup(cat)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "No default template for this category")
	}

	s.logger.Info("label design reset",
		zap.String("tenantId", tenantID.String()),
		zap.String("category", string(cat)))

	return &DesignResponse{
		Category:   string(cat),
		Name:       "Default",
		Document:   doc,
		Customized: false,
	}, nil
}

// ListDesigns returns the tenant's saved (customized) designs
func (s *LabelService) ListDesigns(ctx context.Context, tenantID uuid.UUID) (*ListDesignsResponse, error) {
	designs, err := s.designRepo.FindAllForTenant(ctx, tenantID, shared.DefaultFilter())
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}

	items := make([]DesignResponse, len(designs))
	for i, d := range designs {
		items[i] = *toDesignResponse(&d)
	}

	return &ListDesignsResponse{
		Items: items,
		Total: int64(len(items)),
	}, nil
}

// =============================================================================
// Template and Field Catalog Operations
// =============================================================================

// ListTemplates returns the built-in template presets, optionally filtered by
// category. Documents are omitted; fetch a single template to get one.
func (s *LabelService) ListTemplates(category string) ([]TemplateResponse, error) {
	var cat label.Category
	if category != "" {
		cat = label.Category(category)
		if !cat.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid product category")
		}
	}

	all := s.registry.All()
	result := make([]TemplateResponse, 0, len(all))
	for _, t := range all {
		if category != "" && t.Category != cat {
			continue
		}
		result = append(result, TemplateResponse{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Category:    string(t.Category),
			Variant:     t.Variant,
			IsDefault:   t.IsDefault,
		})
	}
	return result, nil
}

// GetTemplate returns one built-in template including its design document
func (s *LabelService) GetTemplate(id string) (*TemplateResponse, error) {
	t, ok := s.registry.ByID(id)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
	}

	doc := t.Design.Clone()
	return &TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Category:    string(t.Category),
		Variant:     t.Variant,
		IsDefault:   t.IsDefault,
		Design:      &doc,
	}, nil
}

// ListFields returns the bindable field catalog for the editor
func (s *LabelService) ListFields() []FieldResponse {
	keys := label.AllFieldKeys()
	result := make([]FieldResponse, len(keys))
	for i, k := range keys {
		result[i] = FieldResponse{
			Key:   string(k),
			Label: k.DisplayLabel(),
		}
	}
	return result
}

// =============================================================================
// Rendering Operations
// =============================================================================

// RenderLabel renders the label PDF for a batch, stores it and returns a
// download URL. The design is the tenant's customization for the product's
// category, or the built-in default.
func (s *LabelService) RenderLabel(ctx context.Context, tenantID uuid.UUID, req RenderLabelRequest) (*RenderLabelResponse, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, req.BatchID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Batch not found")
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}

	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, batch.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	doc, err := s.loadDocument(ctx, tenantID, product.Category)
	if err != nil {
		return nil, err
	}

	values := passport.BuildFieldValues(tenant, product, batch, s.publicBaseURL)
	resolved := label.Resolve(&doc, values)

	html, err := s.htmlBuilder.Build(&resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to build label HTML: %w", err)
	}

	pdfResult, err := s.pdfRenderer.Render(ctx, &rendering.RenderRequest{
		HTML:         html,
		PageWidthPt:  resolved.PageWidth,
		PageHeightPt: resolved.PageHeight,
		Title:        fmt.Sprintf("%s - %s", product.Name, batch.BatchNumber),
		Timeout:      s.renderTimeout,
	})
	if err != nil {
		var renderErr *rendering.RenderError
		if errors.As(err, &renderErr) {
			return nil, shared.NewDomainError(renderErr.Code, renderErr.Message)
		}
		return nil, fmt.Errorf("failed to render label PDF: %w", err)
	}

	key := fmt.Sprintf("tenants/%s/labels/%s-%d.pdf", tenantID, batch.ID, time.Now().UnixMilli())
	if err := s.artifacts.Upload(ctx, key, pdfResult.PDFData, "application/pdf"); err != nil {
		return nil, fmt.Errorf("failed to store label PDF: %w", err)
	}

	url, expiresAt, err := s.artifacts.GenerateDownloadURL(ctx, key, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download URL: %w", err)
	}

	s.logger.Info("label rendered",
		zap.String("batchId", batch.ID.String()),
		zap.String("category", string(product.Category)),
		zap.Int("bytes", len(pdfResult.PDFData)),
		zap.Duration("duration", pdfResult.RenderDuration))

	return &RenderLabelResponse{
		URL:          url,
		ExpiresAt:    expiresAt,
		SizeBytes:    len(pdfResult.PDFData),
		PageWidthPt:  resolved.PageWidth,
		PageHeightPt: resolved.PageHeight,
		RenderMs:     pdfResult.RenderDuration.Milliseconds(),
	}, nil
}

// PreviewDesign produces the HTML preview for the editor. An inline document
// takes precedence over the saved design; a batch id binds real field values.
func (s *LabelService) PreviewDesign(ctx context.Context, tenantID uuid.UUID, req PreviewRequest) (*PreviewResponse, error) {
	cat := label.Category(req.Category)
	if !cat.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid product category")
	}

	var doc label.DesignDocument
	if req.Document != nil {
		if err := req.Document.Validate(); err != nil {
			return nil, err
		}
		doc = *req.Document
	} else {
		var err error
		doc, err = s.loadDocument(ctx, tenantID, cat)
		if err != nil {
			return nil, err
		}
	}

	values := label.FieldValues{}
	if req.BatchID != nil {
		batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, *req.BatchID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Batch not found")
			}
			return nil, fmt.Errorf("failed to get batch: %w", err)
		}
		product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, batch.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
			}
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to get tenant: %w", err)
		}
		values = passport.BuildFieldValues(tenant, product, batch, s.publicBaseURL)
	}

	resolved := label.Resolve(&doc, values)
	html, err := s.htmlBuilder.Build(&resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to build label HTML: %w", err)
	}

	return &PreviewResponse{
		HTML:         html,
		PageWidthPt:  resolved.PageWidth,
		PageHeightPt: resolved.PageHeight,
	}, nil
}

// loadDocument returns the tenant's saved document for a category or the
// built-in default
func (s *LabelService) loadDocument(ctx context.Context, tenantID uuid.UUID, cat label.Category) (label.DesignDocument, error) {
	design, err := s.designRepo.FindByCategory(ctx, tenantID, cat)
	if err == nil {
		return design.Document, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return label.DesignDocument{}, fmt.Errorf("failed to get design: %w", err)
	}

	doc, ok := s.registry.DefaultDesignForGroup(cat)
	if !ok {
		return label.DesignDocument{}, shared.NewDomainError("NOT_FOUND", "No default template for this category")
	}
	return doc, nil
}

// =============================================================================
// Helper Functions
// =============================================================================

func toDesignResponse(d *label.LabelDesign) *DesignResponse {
	updatedAt := d.UpdatedAt
	return &DesignResponse{
		ID:               d.ID.String(),
		Category:         string(d.Category),
		Name:             d.Name,
		SourceTemplateID: d.SourceTemplateID,
		Document:         d.Document,
		Customized:       true,
		Version:          d.GetVersion(),
		UpdatedAt:        &updatedAt,
	}
}
