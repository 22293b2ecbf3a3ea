package inventory

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Stock DTOs
// =============================================================================

// ReceiveStockRequest books received quantity into a location
type ReceiveStockRequest struct {
	BatchID  uuid.UUID `json:"batch_id" binding:"required"`
	Location string    `json:"location" binding:"required,min=1,max=50"`
	Quantity float64   `json:"quantity" binding:"required,gt=0"`
}

// ShipStockRequest books shipped quantity out of a location
type ShipStockRequest struct {
	BatchID  uuid.UUID `json:"batch_id" binding:"required"`
	Location string    `json:"location" binding:"required,min=1,max=50"`
	Quantity float64   `json:"quantity" binding:"required,gt=0"`
}

// AdjustStockRequest corrects the on-hand quantity by a signed delta
type AdjustStockRequest struct {
	BatchID  uuid.UUID `json:"batch_id" binding:"required"`
	Location string    `json:"location" binding:"required,min=1,max=50"`
	Delta    float64   `json:"delta" binding:"required"`
	Reason   string    `json:"reason" binding:"required,min=1,max=200"`
}

// ListStockRequest lists the tenant's stock records
type ListStockRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Location string `form:"location"`
}

// ListMovementsRequest lists the movement history of a stock item
type ListMovementsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// StockItemResponse represents the stock of one batch at one location
type StockItemResponse struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	ProductID  string     `json:"product_id"`
	BatchID    string     `json:"batch_id"`
	Location   string     `json:"location"`
	OnHand     string     `json:"on_hand"`
	LastMoveAt *time.Time `json:"last_move_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// MovementResponse represents one recorded stock movement
type MovementResponse struct {
	ID          string    `json:"id"`
	StockItemID string    `json:"stock_item_id"`
	ProductID   string    `json:"product_id"`
	BatchID     string    `json:"batch_id"`
	Type        string    `json:"type"`
	Quantity    string    `json:"quantity"`
	After       string    `json:"after"`
	Reason      string    `json:"reason,omitempty"`
	MovedAt     time.Time `json:"moved_at"`
}

// MovementResult carries the stock item together with the movement it produced
type MovementResult struct {
	Stock    StockItemResponse `json:"stock"`
	Movement MovementResponse  `json:"movement"`
}

// ListStockResponse is a paginated list of stock records
type ListStockResponse struct {
	Items []StockItemResponse `json:"items"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
}

// ListMovementsResponse is a paginated movement history
type ListMovementsResponse struct {
	Items []MovementResponse `json:"items"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}
