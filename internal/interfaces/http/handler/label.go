package handler

import (
	"github.com/gin-gonic/gin"

	labelapp "github.com/lucamadonia/dpp-backend/internal/application/label"
)

// LabelHandler handles label design, template and rendering endpoints
type LabelHandler struct {
	BaseHandler
	labelService *labelapp.LabelService
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(labelService *labelapp.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// GetDesign returns the tenant's design for a category, or the built-in default
func (h *LabelHandler) GetDesign(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	result, err := h.labelService.GetDesign(c.Request.Context(), tenantID, c.Param("category"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// SaveDesign creates or replaces the tenant's design for a category
func (h *LabelHandler) SaveDesign(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req labelapp.SaveDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.labelService.SaveDesign(c.Request.Context(), tenantID, c.Param("category"), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ResetDesign reverts a category to the built-in default design
func (h *LabelHandler) ResetDesign(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	result, err := h.labelService.ResetDesign(c.Request.Context(), tenantID, c.Param("category"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListDesigns returns the tenant's customized designs
func (h *LabelHandler) ListDesigns(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	result, err := h.labelService.ListDesigns(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListTemplates returns the built-in template presets
func (h *LabelHandler) ListTemplates(c *gin.Context) {
	result, err := h.labelService.ListTemplates(c.Query("category"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetTemplate returns one built-in template including its design document
func (h *LabelHandler) GetTemplate(c *gin.Context) {
	result, err := h.labelService.GetTemplate(c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListFields returns the bindable field catalog for the editor
func (h *LabelHandler) ListFields(c *gin.Context) {
	h.Success(c, h.labelService.ListFields())
}

// RenderLabel renders a batch label to PDF and returns a download URL
func (h *LabelHandler) RenderLabel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req labelapp.RenderLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.labelService.RenderLabel(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// PreviewDesign produces the HTML preview for the editor
func (h *LabelHandler) PreviewDesign(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req labelapp.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.labelService.PreviewDesign(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
