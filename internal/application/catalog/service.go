package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lucamadonia/dpp-backend/internal/domain/catalog"
	"github.com/lucamadonia/dpp-backend/internal/domain/identity"
	"github.com/lucamadonia/dpp-backend/internal/domain/label"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
	tenantRepo  identity.TenantRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	tenantRepo identity.TenantRepository,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		tenantRepo:  tenantRepo,
		logger:      logger,
	}
}

// CreateProduct creates a new product, enforcing the plan's product limit
func (s *ProductService) CreateProduct(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	count, err := s.productRepo.CountForTenant(ctx, tenantID, shared.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if !tenant.CanAddProduct(int(count)) {
		return nil, shared.NewDomainError("LIMIT_REACHED", "Product limit for the current plan is reached")
	}

	exists, err := s.productRepo.ExistsBySKU(ctx, tenantID, req.SKU)
	if err != nil {
		return nil, fmt.Errorf("failed to check SKU: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this SKU already exists")
	}

	product, err := catalog.NewProduct(tenantID, req.Name, req.SKU, label.Category(req.Category))
	if err != nil {
		return nil, err
	}

	if err := s.applyOptionalFields(product, req); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Info("product created",
		zap.String("id", product.ID.String()),
		zap.String("sku", product.SKU),
		zap.String("category", string(product.Category)))

	return toProductResponse(product), nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProductBySKU retrieves a product by SKU
func (s *ProductService) GetProductBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, tenantID, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return toProductResponse(product), nil
}

// ListProducts returns a paginated list of the tenant's products
func (s *ProductService) ListProducts(ctx context.Context, tenantID uuid.UUID, req ListProductsRequest) (*ListProductsResponse, error) {
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
	if req.Category != "" {
		filter.Filters["category"] = req.Category
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.Country != "" {
		filter.Filters["country_of_origin"] = req.Country
	}

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	total, err := s.productRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	items := make([]ProductResponse, len(products))
	for i, p := range products {
		items[i] = *toProductResponse(&p)
	}

	return &ListProductsResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// UpdateProduct updates product master data
func (s *ProductService) UpdateProduct(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := product.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}
	if req.GTIN != nil {
		if err := product.SetGTIN(*req.GTIN); err != nil {
			return nil, err
		}
	}
	if req.Manufacturer != nil {
		if err := product.SetManufacturer(*req.Manufacturer); err != nil {
			return nil, err
		}
	}
	if req.CountryOfOrigin != nil {
		if err := product.SetCountryOfOrigin(*req.CountryOfOrigin); err != nil {
			return nil, err
		}
	}
	if req.NetWeightKg != nil || req.GrossWeightKg != nil {
		net := product.NetWeightKg
		if req.NetWeightKg != nil {
			net = decimal.NewFromFloat(*req.NetWeightKg)
		}
		gross := product.GrossWeightKg
		if req.GrossWeightKg != nil {
			gross = decimal.NewFromFloat(*req.GrossWeightKg)
		}
		if err := product.SetWeights(net, gross); err != nil {
			return nil, err
		}
	}
	if req.EnergyClass != nil || req.EPRELID != nil {
		energyClass := product.EnergyClass
		if req.EnergyClass != nil {
			energyClass = *req.EnergyClass
		}
		eprelID := product.EPRELID
		if req.EPRELID != nil {
			eprelID = *req.EPRELID
		}
		if err := product.SetEnergyData(energyClass, eprelID); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Info("product updated", zap.String("id", product.ID.String()))
	return toProductResponse(product), nil
}

// SetMaterials replaces the product's material composition
func (s *ProductService) SetMaterials(ctx context.Context, tenantID, productID uuid.UUID, req SetMaterialsRequest) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	materials := make([]catalog.MaterialEntry, len(req.Materials))
	for i, m := range req.Materials {
		materials[i] = catalog.MaterialEntry{
			Material:      m.Material,
			Percentage:    decimal.NewFromFloat(m.Percentage),
			RecycledShare: decimal.NewFromFloat(m.RecycledShare),
		}
	}

	if err := product.SetMaterials(materials); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return toProductResponse(product), nil
}

// AddCertification attaches a certification to the product
func (s *ProductService) AddCertification(ctx context.Context, tenantID, productID uuid.UUID, req CertificationDTO) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	cert := catalog.Certification{
		Scheme:    req.Scheme,
		Number:    req.Number,
		IssuedAt:  req.IssuedAt,
		ExpiresAt: req.ExpiresAt,
	}
	if err := product.AddCertification(cert); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return toProductResponse(product), nil
}

// RemoveCertification detaches a certification from the product
func (s *ProductService) RemoveCertification(ctx context.Context, tenantID, productID uuid.UUID, scheme, number string) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.RemoveCertification(scheme, number); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return toProductResponse(product), nil
}

// SetCarbonFootprint sets the product's declared carbon data
func (s *ProductService) SetCarbonFootprint(ctx context.Context, tenantID, productID uuid.UUID, req SetCarbonRequest) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	carbon := catalog.CarbonFootprint{
		KgCO2ePerUnit: decimal.NewFromFloat(req.KgCO2ePerUnit),
		Scope:         req.Scope,
		Method:        req.Method,
	}
	if err := product.SetCarbonFootprint(carbon); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return toProductResponse(product), nil
}

// ActivateProduct re-activates an inactive product
func (s *ProductService) ActivateProduct(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	return s.transition(ctx, tenantID, productID, (*catalog.Product).Activate)
}

// DeactivateProduct deactivates a product
func (s *ProductService) DeactivateProduct(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	return s.transition(ctx, tenantID, productID, (*catalog.Product).Deactivate)
}

// DiscontinueProduct permanently discontinues a product
func (s *ProductService) DiscontinueProduct(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	return s.transition(ctx, tenantID, productID, (*catalog.Product).Discontinue)
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	if _, err := s.findProduct(ctx, tenantID, productID); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info("product deleted", zap.String("id", productID.String()))
	return nil
}

func (s *ProductService) transition(ctx context.Context, tenantID, productID uuid.UUID, fn func(*catalog.Product) error) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := fn(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return toProductResponse(product), nil
}

func (s *ProductService) findProduct(ctx context.Context, tenantID, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *ProductService) applyOptionalFields(product *catalog.Product, req CreateProductRequest) error {
	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return err
		}
	}
	if req.GTIN != "" {
		if err := product.SetGTIN(req.GTIN); err != nil {
			return err
		}
	}
	if req.Manufacturer != "" {
		if err := product.SetManufacturer(req.Manufacturer); err != nil {
			return err
		}
	}
	if req.CountryOfOrigin != "" {
		if err := product.SetCountryOfOrigin(req.CountryOfOrigin); err != nil {
			return err
		}
	}
	if req.NetWeightKg > 0 || req.GrossWeightKg > 0 {
		if err := product.SetWeights(decimal.NewFromFloat(req.NetWeightKg), decimal.NewFromFloat(req.GrossWeightKg)); err != nil {
			return err
		}
	}
	if req.EnergyClass != "" || req.EPRELID != "" {
		if err := product.SetEnergyData(req.EnergyClass, req.EPRELID); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Helper Functions
// =============================================================================

func toProductResponse(p *catalog.Product) *ProductResponse {
	materials := make([]MaterialEntryDTO, len(p.Materials))
	for i, m := range p.Materials {
		materials[i] = MaterialEntryDTO{
			Material:      m.Material,
			Percentage:    m.Percentage.InexactFloat64(),
			RecycledShare: m.RecycledShare.InexactFloat64(),
		}
	}

	certs := make([]CertificationDTO, len(p.Certifications))
	for i, c := range p.Certifications {
		certs[i] = CertificationDTO{
			Scheme:    c.Scheme,
			Number:    c.Number,
			IssuedAt:  c.IssuedAt,
			ExpiresAt: c.ExpiresAt,
		}
	}

	resp := &ProductResponse{
		ID:              p.ID.String(),
		TenantID:        p.TenantID.String(),
		Name:            p.Name,
		Description:     p.Description,
		GTIN:            p.GTIN,
		SKU:             p.SKU,
		Category:        string(p.Category),
		Manufacturer:    p.Manufacturer,
		CountryOfOrigin: p.CountryOfOrigin,
		EnergyClass:     p.EnergyClass,
		EPRELID:         p.EPRELID,
		Status:          string(p.Status),
		Materials:       materials,
		Certifications:  certs,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}

	if !p.NetWeightKg.IsZero() {
		resp.NetWeightKg = p.NetWeightKg.String()
	}
	if !p.GrossWeightKg.IsZero() {
		resp.GrossWeightKg = p.GrossWeightKg.String()
	}
	if p.Carbon != nil {
		resp.Carbon = &CarbonDTO{
			KgCO2ePerUnit: p.Carbon.KgCO2ePerUnit.InexactFloat64(),
			Scope:         p.Carbon.Scope,
			Method:        p.Carbon.Method,
		}
	}

	return resp
}
