package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	passportapp "github.com/lucamadonia/dpp-backend/internal/application/passport"
)

// BatchHandler handles batch and passport lifecycle endpoints
type BatchHandler struct {
	BaseHandler
	passportService *passportapp.PassportService
}

// NewBatchHandler creates a new BatchHandler
func NewBatchHandler(passportService *passportapp.PassportService) *BatchHandler {
	return &BatchHandler{passportService: passportService}
}

// CreateBatch creates a new draft batch
func (h *BatchHandler) CreateBatch(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req passportapp.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.passportService.CreateBatch(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetBatch retrieves a batch by ID
func (h *BatchHandler) GetBatch(c *gin.Context) {
	tenantID, batchID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	result, err := h.passportService.GetBatch(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListBatches returns a paginated list of the tenant's batches
func (h *BatchHandler) ListBatches(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req passportapp.ListBatchesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.passportService.ListBatches(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.Size)
}

// UpdateBatch updates mutable batch data
func (h *BatchHandler) UpdateBatch(c *gin.Context) {
	tenantID, batchID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	var req passportapp.UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.passportService.UpdateBatch(c.Request.Context(), tenantID, batchID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// PublishBatch makes the batch passport publicly readable
func (h *BatchHandler) PublishBatch(c *gin.Context) {
	h.transition(c, h.passportService.PublishBatch)
}

// ArchiveBatch withdraws the passport from public view
func (h *BatchHandler) ArchiveBatch(c *gin.Context) {
	h.transition(c, h.passportService.ArchiveBatch)
}

// DeleteBatch removes a draft batch
func (h *BatchHandler) DeleteBatch(c *gin.Context) {
	tenantID, batchID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	if err := h.passportService.DeleteBatch(c.Request.Context(), tenantID, batchID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *BatchHandler) transition(c *gin.Context, fn func(ctx context.Context, tenantID, batchID uuid.UUID) (*passportapp.BatchResponse, error)) {
	tenantID, batchID, ok := h.tenantAndParamID(c)
	if !ok {
		return
	}

	result, err := fn(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *BatchHandler) tenantAndParamID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return uuid.Nil, uuid.Nil, false
	}

	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, batchID, true
}
