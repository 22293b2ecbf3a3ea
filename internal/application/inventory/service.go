package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lucamadonia/dpp-backend/internal/domain/inventory"
	"github.com/lucamadonia/dpp-backend/internal/domain/passport"
	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

// InventoryService handles batch-level stock tracking
type InventoryService struct {
	stockRepo inventory.StockRepository
	batchRepo passport.BatchRepository
	logger    *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	stockRepo inventory.StockRepository,
	batchRepo passport.BatchRepository,
	logger *zap.Logger,
) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		stockRepo: stockRepo,
		batchRepo: batchRepo,
		logger:    logger,
	}
}

// ReceiveStock books received quantity into a location, creating the stock
// record on first receipt
func (s *InventoryService) ReceiveStock(ctx context.Context, tenantID uuid.UUID, req ReceiveStockRequest) (*MovementResult, error) {
	item, err := s.findOrCreateItem(ctx, tenantID, req.BatchID, req.Location)
	if err != nil {
		return nil, err
	}

	movement, err := item.Receive(decimal.NewFromFloat(req.Quantity))
	if err != nil {
		return nil, err
	}

	if err := s.persistMove(ctx, item, movement); err != nil {
		return nil, err
	}

	s.logger.Info("stock received",
		zap.String("stock_item_id", item.ID.String()),
		zap.String("location", item.Location),
		zap.String("quantity", movement.Quantity.String()))

	return toMovementResult(item, movement), nil
}

// ShipStock books shipped quantity out of a location
func (s *InventoryService) ShipStock(ctx context.Context, tenantID uuid.UUID, req ShipStockRequest) (*MovementResult, error) {
	item, err := s.findItem(ctx, tenantID, req.BatchID, req.Location)
	if err != nil {
		return nil, err
	}

	movement, err := item.Ship(decimal.NewFromFloat(req.Quantity))
	if err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock on hand")
		}
		return nil, err
	}

	if err := s.persistMove(ctx, item, movement); err != nil {
		return nil, err
	}

	s.logger.Info("stock shipped",
		zap.String("stock_item_id", item.ID.String()),
		zap.String("location", item.Location),
		zap.String("quantity", movement.Quantity.String()))

	return toMovementResult(item, movement), nil
}

// AdjustStock corrects the on-hand quantity by a signed delta
func (s *InventoryService) AdjustStock(ctx context.Context, tenantID uuid.UUID, req AdjustStockRequest) (*MovementResult, error) {
	item, err := s.findItem(ctx, tenantID, req.BatchID, req.Location)
	if err != nil {
		return nil, err
	}

	movement, err := item.Adjust(decimal.NewFromFloat(req.Delta), req.Reason)
	if err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Adjustment would make stock negative")
		}
		return nil, err
	}

	if err := s.persistMove(ctx, item, movement); err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("stock_item_id", item.ID.String()),
		zap.String("delta", movement.Quantity.String()),
		zap.String("reason", movement.Reason))

	return toMovementResult(item, movement), nil
}

// GetStockItem retrieves a stock record by ID
func (s *InventoryService) GetStockItem(ctx context.Context, tenantID, stockItemID uuid.UUID) (*StockItemResponse, error) {
	item, err := s.stockRepo.FindByIDForTenant(ctx, tenantID, stockItemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Stock item not found")
		}
		return nil, fmt.Errorf("failed to get stock item: %w", err)
	}
	resp := toStockItemResponse(item)
	return &resp, nil
}

// ListStock returns a paginated list of the tenant's stock records
func (s *InventoryService) ListStock(ctx context.Context, tenantID uuid.UUID, req ListStockRequest) (*ListStockResponse, error) {
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
	if req.Location != "" {
		filter.Filters["location"] = strings.ToUpper(strings.TrimSpace(req.Location))
	}

	items, err := s.stockRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}

	total, err := s.stockRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count stock: %w", err)
	}

	responses := make([]StockItemResponse, len(items))
	for i := range items {
		responses[i] = toStockItemResponse(&items[i])
	}

	return &ListStockResponse{
		Items: responses,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// StockByProduct returns all stock records for a product across locations
func (s *InventoryService) StockByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]StockItemResponse, error) {
	items, err := s.stockRepo.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock by product: %w", err)
	}

	responses := make([]StockItemResponse, len(items))
	for i := range items {
		responses[i] = toStockItemResponse(&items[i])
	}
	return responses, nil
}

// ListMovements returns the movement history of a stock item
func (s *InventoryService) ListMovements(ctx context.Context, tenantID, stockItemID uuid.UUID, req ListMovementsRequest) (*ListMovementsResponse, error) {
	if _, err := s.stockRepo.FindByIDForTenant(ctx, tenantID, stockItemID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Stock item not found")
		}
		return nil, fmt.Errorf("failed to get stock item: %w", err)
	}

	filter := shared.DefaultFilter()
	filter.OrderBy = "moved_at"
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}

	movements, err := s.stockRepo.FindMovements(ctx, tenantID, stockItemID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	items := make([]MovementResponse, len(movements))
	for i := range movements {
		items[i] = toMovementResponse(&movements[i])
	}

	return &ListMovementsResponse{
		Items: items,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// =============================================================================
// Helper Functions
// =============================================================================

func (s *InventoryService) findItem(ctx context.Context, tenantID, batchID uuid.UUID, location string) (*inventory.StockItem, error) {
	item, err := s.stockRepo.FindByBatchAndLocation(ctx, tenantID, batchID, location)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "No stock record for this batch and location")
		}
		return nil, fmt.Errorf("failed to get stock item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) findOrCreateItem(ctx context.Context, tenantID, batchID uuid.UUID, location string) (*inventory.StockItem, error) {
	item, err := s.stockRepo.FindByBatchAndLocation(ctx, tenantID, batchID, location)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to get stock item: %w", err)
	}

	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Batch not found")
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}

	return inventory.NewStockItem(tenantID, batch.ProductID, batch.ID, location)
}

func (s *InventoryService) persistMove(ctx context.Context, item *inventory.StockItem, movement *inventory.Movement) error {
	if err := s.stockRepo.Save(ctx, item); err != nil {
		return fmt.Errorf("failed to save stock item: %w", err)
	}
	if err := s.stockRepo.SaveMovement(ctx, movement); err != nil {
		return fmt.Errorf("failed to save movement: %w", err)
	}
	return nil
}

func toMovementResult(item *inventory.StockItem, movement *inventory.Movement) *MovementResult {
	return &MovementResult{
		Stock:    toStockItemResponse(item),
		Movement: toMovementResponse(movement),
	}
}

func toStockItemResponse(item *inventory.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:         item.ID.String(),
		TenantID:   item.TenantID.String(),
		ProductID:  item.ProductID.String(),
		BatchID:    item.BatchID.String(),
		Location:   item.Location,
		OnHand:     item.OnHand.String(),
		LastMoveAt: item.LastMoveAt,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

func toMovementResponse(m *inventory.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID.String(),
		StockItemID: m.StockItemID.String(),
		ProductID:   m.ProductID.String(),
		BatchID:     m.BatchID.String(),
		Type:        string(m.Type),
		Quantity:    m.Quantity.String(),
		After:       m.After.String(),
		Reason:      m.Reason,
		MovedAt:     m.MovedAt,
	}
}
