package passport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lucamadonia/dpp-backend/internal/domain/catalog"
	"github.com/lucamadonia/dpp-backend/internal/domain/identity"
	"github.com/lucamadonia/dpp-backend/internal/domain/passport"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// PassportCache caches rendered public passports by slug.
// Get returns nil, nil on a cache miss.
type PassportCache interface {
	Get(ctx context.Context, slug string) (*PublicPassportResponse, error)
	Set(ctx context.Context, slug string, view *PublicPassportResponse, ttl time.Duration) error
	Delete(ctx context.Context, slug string) error
}

// PassportService handles batch lifecycle and the public passport view
type PassportService struct {
	batchRepo     passport.BatchRepository
	productRepo   catalog.ProductRepository
	tenantRepo    identity.TenantRepository
	cache         PassportCache
	cacheTTL      time.Duration
	publicBaseURL string
	logger        *zap.Logger
}

// NewPassportService creates a new PassportService. The cache is optional.
func NewPassportService(
	batchRepo passport.BatchRepository,
	productRepo catalog.ProductRepository,
	tenantRepo identity.TenantRepository,
	cache PassportCache,
	cacheTTL time.Duration,
	publicBaseURL string,
	logger *zap.Logger,
) *PassportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PassportService{
		batchRepo:     batchRepo,
		productRepo:   productRepo,
		tenantRepo:    tenantRepo,
		cache:         cache,
		cacheTTL:      cacheTTL,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// =============================================================================
// Batch Lifecycle
// =============================================================================

// CreateBatch creates a new draft batch for a product
func (s *PassportService) CreateBatch(ctx context.Context, tenantID uuid.UUID, req CreateBatchRequest) (*BatchResponse, error) {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	existing, err := s.batchRepo.FindByBatchNumber(ctx, tenantID, req.ProductID, req.BatchNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check batch number: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A batch with this number already exists for the product")
	}

	batch, err := passport.NewBatch(tenantID, req.ProductID, req.BatchNumber, req.ProductionDate, decimal.NewFromFloat(req.Quantity))
	if err != nil {
		return nil, err
	}

	if req.ExpiryDate != nil {
		if err := batch.SetExpiryDate(*req.ExpiryDate); err != nil {
			return nil, err
		}
	}
	if req.PackageCount > 0 {
		if err := batch.SetPackageCount(req.PackageCount); err != nil {
			return nil, err
		}
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to save batch: %w", err)
	}

	s.logger.Info("batch created",
		zap.String("id", batch.ID.String()),
		zap.String("product_id", batch.ProductID.String()),
		zap.String("batch_number", batch.BatchNumber))

	return s.toBatchResponse(batch), nil
}

// GetBatch retrieves a batch by ID
func (s *PassportService) GetBatch(ctx context.Context, tenantID, batchID uuid.UUID) (*BatchResponse, error) {
	batch, err := s.findBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}
	return s.toBatchResponse(batch), nil
}

// ListBatches returns a paginated list of the tenant's batches
func (s *PassportService) ListBatches(ctx context.Context, tenantID uuid.UUID, req ListBatchesRequest) (*ListBatchesResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	var (
		batches []passport.Batch
		err     error
	)
	if req.ProductID != nil {
		filter.Filters["product_id"] = req.ProductID.String()
		batches, err = s.batchRepo.FindByProduct(ctx, tenantID, *req.ProductID, filter)
	} else {
		batches, err = s.batchRepo.FindAllForTenant(ctx, tenantID, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}

	total, err := s.batchRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count batches: %w", err)
	}

	items := make([]BatchResponse, len(batches))
	for i, b := range batches {
		items[i] = *s.toBatchResponse(&b)
	}

	return &ListBatchesResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// UpdateBatch updates mutable batch data
func (s *PassportService) UpdateBatch(ctx context.Context, tenantID, batchID uuid.UUID, req UpdateBatchRequest) (*BatchResponse, error) {
	batch, err := s.findBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	if req.ExpiryDate != nil {
		if err := batch.SetExpiryDate(*req.ExpiryDate); err != nil {
			return nil, err
		}
	}
	if req.PackageCount != nil {
		if err := batch.SetPackageCount(*req.PackageCount); err != nil {
			return nil, err
		}
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to save batch: %w", err)
	}

	s.invalidatePublicView(ctx, batch)

	return s.toBatchResponse(batch), nil
}

// PublishBatch makes the batch passport publicly readable, enforcing the
// plan's published passport limit
func (s *PassportService) PublishBatch(ctx context.Context, tenantID, batchID uuid.UUID) (*BatchResponse, error) {
	batch, err := s.findBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	published, err := s.batchRepo.CountPublishedForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count published passports: %w", err)
	}
	if published >= int64(tenant.Config.MaxPassports) {
		return nil, shared.NewDomainError("LIMIT_REACHED", "Published passport limit for the current plan is reached")
	}

	if err := batch.Publish(); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to save batch: %w", err)
	}

	s.invalidatePublicView(ctx, batch)

	s.logger.Info("batch published",
		zap.String("id", batch.ID.String()),
		zap.String("slug", batch.PublicSlug))

	return s.toBatchResponse(batch), nil
}

// ArchiveBatch withdraws the passport from public view
func (s *PassportService) ArchiveBatch(ctx context.Context, tenantID, batchID uuid.UUID) (*BatchResponse, error) {
	batch, err := s.findBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	if err := batch.Archive(); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to save batch: %w", err)
	}

	s.invalidatePublicView(ctx, batch)

	s.logger.Info("batch archived", zap.String("id", batch.ID.String()))
	return s.toBatchResponse(batch), nil
}

// DeleteBatch removes a draft batch. Published or archived batches must stay
// so their slugs keep resolving.
func (s *PassportService) DeleteBatch(ctx context.Context, tenantID, batchID uuid.UUID) error {
	batch, err := s.findBatch(ctx, tenantID, batchID)
	if err != nil {
		return err
	}

	if !batch.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft batches can be deleted")
	}

	if err := s.batchRepo.Delete(ctx, batchID); err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}

	s.logger.Info("batch deleted", zap.String("id", batchID.String()))
	return nil
}

// =============================================================================
// Public Passport
// =============================================================================

// GetPublicPassport resolves a public slug to the consumer-facing passport
// view. It is the only unauthenticated read path.
func (s *PassportService) GetPublicPassport(ctx context.Context, slug string) (*PublicPassportResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, slug)
		if err != nil {
			s.logger.Warn("passport cache read failed", zap.String("slug", slug), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	batch, err := s.batchRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Passport not found")
		}
		return nil, fmt.Errorf("failed to get batch by slug: %w", err)
	}

	if batch.Status == passport.StatusArchived {
		return nil, shared.NewDomainError("PASSPORT_ARCHIVED", "This passport has been withdrawn by the publisher")
	}
	if !batch.IsPublished() {
		return nil, shared.NewDomainError("NOT_FOUND", "Passport not found")
	}

	product, err := s.productRepo.FindByIDForTenant(ctx, batch.TenantID, batch.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	tenant, err := s.tenantRepo.FindByID(ctx, batch.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	view := buildPublicView(batch, product, tenant)

	if s.cache != nil {
		if err := s.cache.Set(ctx, slug, view, s.cacheTTL); err != nil {
			s.logger.Warn("passport cache write failed", zap.String("slug", slug), zap.Error(err))
		}
	}

	return view, nil
}

// =============================================================================
// Helper Functions
// =============================================================================

func (s *PassportService) findBatch(ctx context.Context, tenantID, batchID uuid.UUID) (*passport.Batch, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Batch not found")
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return batch, nil
}

func (s *PassportService) invalidatePublicView(ctx context.Context, batch *passport.Batch) {
	if s.cache == nil || batch.PublicSlug == "" {
		return
	}
	if err := s.cache.Delete(ctx, batch.PublicSlug); err != nil {
		s.logger.Warn("passport cache invalidation failed",
			zap.String("slug", batch.PublicSlug), zap.Error(err))
	}
}

func (s *PassportService) toBatchResponse(b *passport.Batch) *BatchResponse {
	resp := &BatchResponse{
		ID:             b.ID.String(),
		TenantID:       b.TenantID.String(),
		ProductID:      b.ProductID.String(),
		BatchNumber:    b.BatchNumber,
		ProductionDate: b.ProductionDate,
		ExpiryDate:     b.ExpiryDate,
		Quantity:       b.Quantity.String(),
		PackageCount:   b.PackageCount,
		Status:         string(b.Status),
		PublicSlug:     b.PublicSlug,
		PublishedAt:    b.PublishedAt,
		ArchivedAt:     b.ArchivedAt,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	if b.PublicSlug != "" && s.publicBaseURL != "" {
		resp.PublicURL = s.publicBaseURL + "/public/passports/" + b.PublicSlug
	}
	return resp
}

func buildPublicView(b *passport.Batch, p *catalog.Product, t *identity.Tenant) *PublicPassportResponse {
	view := &PublicPassportResponse{
		Slug:            b.PublicSlug,
		ProductName:     p.Name,
		Description:     p.Description,
		GTIN:            p.GTIN,
		Category:        string(p.Category),
		Manufacturer:    p.Manufacturer,
		CountryOfOrigin: p.CountryOfOrigin,
		EnergyClass:     p.EnergyClass,
		EPRELID:         p.EPRELID,
		BatchNumber:     b.BatchNumber,
		ProductionDate:  b.ProductionDate,
		ExpiryDate:      b.ExpiryDate,
		PackageCount:    b.PackageCount,
		ResponsibleName: t.Name,
		ResponsibleEORI: t.EORINumber,
	}
	if b.PublishedAt != nil {
		view.PublishedAt = *b.PublishedAt
	}

	if !p.NetWeightKg.IsZero() {
		view.NetWeight = p.NetWeightKg.String() + " kg"
	}
	if !p.GrossWeightKg.IsZero() {
		view.GrossWeight = p.GrossWeightKg.String() + " kg"
	}

	for _, m := range p.Materials {
		view.Materials = append(view.Materials, PublicMaterialDTO{
			Material:      m.Material,
			Percentage:    m.Percentage.InexactFloat64(),
			RecycledShare: m.RecycledShare.InexactFloat64(),
		})
	}
	for _, c := range p.Certifications {
		view.Certifications = append(view.Certifications, PublicCertificationDTO{
			Scheme:    c.Scheme,
			Number:    c.Number,
			IssuedAt:  c.IssuedAt,
			ExpiresAt: c.ExpiresAt,
		})
	}
	if p.Carbon != nil {
		view.Carbon = &PublicCarbonDTO{
			KgCO2ePerUnit: p.Carbon.KgCO2ePerUnit.InexactFloat64(),
			Scope:         p.Carbon.Scope,
			Method:        p.Carbon.Method,
		}
	}

	return view
}
