package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/lucamadonia/dpp-backend/internal/application/identity"
)

// TenantHandler handles tenant self-management endpoints
type TenantHandler struct {
	BaseHandler
	identityService *identityapp.IdentityService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(identityService *identityapp.IdentityService) *TenantHandler {
	return &TenantHandler{identityService: identityService}
}

// GetTenant returns the caller's tenant
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	result, err := h.identityService.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateTenant updates tenant master data
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req identityapp.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.identityService.UpdateTenant(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ChangePlanRequest switches the tenant to another plan
type ChangePlanRequest struct {
	Plan string `json:"plan" binding:"required,oneof=free pro enterprise"`
}

// ChangePlan switches the tenant's subscription plan
func (h *TenantHandler) ChangePlan(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.identityService.ChangePlan(c.Request.Context(), tenantID, req.Plan)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
