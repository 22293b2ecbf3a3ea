package handler

import (
	"github.com/gin-gonic/gin"

	passportapp "github.com/lucamadonia/dpp-backend/internal/application/passport"
)

// PublicPassportHandler serves the unauthenticated passport view resolved by
// slug. It never exposes tenant-internal identifiers.
type PublicPassportHandler struct {
	BaseHandler
	passportService *passportapp.PassportService
}

// NewPublicPassportHandler creates a new PublicPassportHandler
func NewPublicPassportHandler(passportService *passportapp.PassportService) *PublicPassportHandler {
	return &PublicPassportHandler{passportService: passportService}
}

// GetPassport returns the public passport view for a published batch
func (h *PublicPassportHandler) GetPassport(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Passport slug is required")
		return
	}

	result, err := h.passportService.GetPublicPassport(c.Request.Context(), slug)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
