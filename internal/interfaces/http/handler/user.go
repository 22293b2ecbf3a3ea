package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/lucamadonia/dpp-backend/internal/application/identity"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	BaseHandler
	identityService *identityapp.IdentityService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(identityService *identityapp.IdentityService) *UserHandler {
	return &UserHandler{identityService: identityService}
}

// CreateUser adds a user to the caller's tenant
func (h *UserHandler) CreateUser(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.identityService.CreateUser(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetUser retrieves a user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	tenantID, userID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	result, err := h.identityService.GetUser(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListUsers returns a paginated list of the tenant's users
func (h *UserHandler) ListUsers(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req identityapp.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.identityService.ListUsers(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.Size)
}

// UpdateUser updates a user's profile or role
func (h *UserHandler) UpdateUser(c *gin.Context) {
	tenantID, userID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	var req identityapp.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.identityService.UpdateUser(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ActivateUser re-activates or unlocks a user
func (h *UserHandler) ActivateUser(c *gin.Context) {
	tenantID, userID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	result, err := h.identityService.ActivateUser(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// DeactivateUser deactivates a user
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	tenantID, userID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}
	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User ID not found")
		return
	}

	result, err := h.identityService.DeactivateUser(c.Request.Context(), tenantID, userID, callerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteUser removes a user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	tenantID, userID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}
	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User ID not found")
		return
	}

	if err := h.identityService.DeleteUser(c.Request.Context(), tenantID, userID, callerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *UserHandler) tenantAndParamID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return uuid.Nil, uuid.Nil, false
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, userID, true
}
