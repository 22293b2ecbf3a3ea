package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucamadonia/dpp-backend/internal/domain/shared"
)

func TestNewStockItem(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	batchID := uuid.New()

	tests := []struct {
		name      string
		productID uuid.UUID
		batchID   uuid.UUID
		location  string
		wantErr   bool
	}{
		{"valid", productID, batchID, "wh1-a01", false},
		{"nil product", uuid.Nil, batchID, "WH1-A01", true},
		{"nil batch", productID, uuid.Nil, "WH1-A01", true},
		{"empty location", productID, batchID, "  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewStockItem(tenantID, tt.productID, tt.batchID, tt.location)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, item)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "WH1-A01", item.Location)
			assert.True(t, item.OnHand.IsZero())
			assert.True(t, item.IsEmpty())
		})
	}
}

func TestStockItem_Receive(t *testing.T) {
	item := mustNewStockItem(t)

	movement, err := item.Receive(decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.Equal(t, "100", item.OnHand.String())
	assert.Equal(t, MovementReceive, movement.Type)
	assert.Equal(t, "100", movement.Quantity.String())
	assert.Equal(t, "100", movement.After.String())
	assert.Equal(t, item.ID, movement.StockItemID)

	_, err = item.Receive(decimal.Zero)
	assert.Error(t, err)
	_, err = item.Receive(decimal.NewFromInt(-5))
	assert.Error(t, err)
}

func TestStockItem_Ship(t *testing.T) {
	item := mustNewStockItem(t)
	_, err := item.Receive(decimal.NewFromInt(100))
	require.NoError(t, err)

	movement, err := item.Ship(decimal.NewFromInt(30))
	require.NoError(t, err)

	assert.Equal(t, "70", item.OnHand.String())
	assert.Equal(t, MovementShip, movement.Type)
	assert.Equal(t, "-30", movement.Quantity.String())
	assert.Equal(t, "70", movement.After.String())
}

func TestStockItem_Ship_InsufficientStock(t *testing.T) {
	item := mustNewStockItem(t)
	_, err := item.Receive(decimal.NewFromInt(10))
	require.NoError(t, err)

	_, err = item.Ship(decimal.NewFromInt(11))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, "10", item.OnHand.String(), "failed ship leaves stock untouched")
}

func TestStockItem_Adjust(t *testing.T) {
	item := mustNewStockItem(t)
	_, err := item.Receive(decimal.NewFromInt(50))
	require.NoError(t, err)

	movement, err := item.Adjust(decimal.NewFromInt(-3), "damaged in transit")
	require.NoError(t, err)
	assert.Equal(t, "47", item.OnHand.String())
	assert.Equal(t, "damaged in transit", movement.Reason)

	_, err = item.Adjust(decimal.Zero, "")
	assert.Error(t, err)

	_, err = item.Adjust(decimal.NewFromInt(-48), "write-off")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, "47", item.OnHand.String())
}

func TestStockItem_MovementEvents(t *testing.T) {
	item := mustNewStockItem(t)

	_, err := item.Receive(decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = item.Ship(decimal.NewFromInt(4))
	require.NoError(t, err)

	events := item.GetDomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventTypeStockMoved, events[0].EventType())
	assert.Equal(t, EventTypeStockMoved, events[1].EventType())
}

func mustNewStockItem(t *testing.T) *StockItem {
	t.Helper()
	item, err := NewStockItem(uuid.New(), uuid.New(), uuid.New(), "WH1-A01")
	require.NoError(t, err)
	return item
}
