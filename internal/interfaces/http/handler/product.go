package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/lucamadonia/dpp-backend/internal/application/catalog"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct creates a new product
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.CreateProduct(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetProduct retrieves a product by ID
func (h *ProductHandler) GetProduct(c *gin.Context) {
	tenantID, productID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	result, err := h.productService.GetProduct(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListProducts returns a paginated list of the tenant's products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req catalogapp.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.Size)
}

// UpdateProduct updates product master data
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	tenantID, productID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.UpdateProduct(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// SetMaterials replaces the product's material composition
func (h *ProductHandler) SetMaterials(c *gin.Context) {
	tenantID, productID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	var req catalogapp.SetMaterialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.SetMaterials(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// AddCertification attaches a certification to the product
func (h *ProductHandler) AddCertification(c *gin.Context) {
	tenantID, productID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	var req catalogapp.CertificationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.AddCertification(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveCertification detaches a certification from the product
func (h *ProductHandler) RemoveCertification(c *gin.Context) {
	tenantID, productID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	scheme := c.Query("scheme")
	number := c.Query("number")
	if scheme == "" || number == "" {
		h.BadRequest(c, "scheme and number query parameters are required")
		return
	}

	result, err := h.productService.RemoveCertification(c.Request.Context(), tenantID, productID, scheme, number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// SetCarbonFootprint sets the product's declared carbon data
func (h *ProductHandler) SetCarbonFootprint(c *gin.Context) {
	tenantID, productID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	var req catalogapp.SetCarbonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.SetCarbonFootprint(c.Request.Context(), tenantID, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ActivateProduct re-activates an inactive product
func (h *ProductHandler) ActivateProduct(c *gin.Context) {
	h.transition(c, h.productService.ActivateProduct)
}

// DeactivateProduct deactivates a product
func (h *ProductHandler) DeactivateProduct(c *gin.Context) {
	h.transition(c, h.productService.DeactivateProduct)
}

// DiscontinueProduct permanently discontinues a product
func (h *ProductHandler) DiscontinueProduct(c *gin.Context) {
	h.transition(c, h.productService.DiscontinueProduct)
}

// DeleteProduct removes a product
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	tenantID, productID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), tenantID, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *ProductHandler) transition(c *gin.Context, fn func(ctx context.Context, tenantID, productID uuid.UUID) (*catalogapp.ProductResponse, error)) {
	tenantID, productID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	result, err := fn(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *ProductHandler) tenantAndParamID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return uuid.Nil, uuid.Nil, false
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, productID, true
}
