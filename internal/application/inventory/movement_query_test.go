package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/apptest"
	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// TestMovementHistory el historial sale del más reciente al más antiguo y
// respeta los filtros de producto y bodega.
func TestMovementHistory(t *testing.T) {
	store := apptest.NewMemoryStore()
	movRepo := &apptest.MovementRepo{S: store}
	stockRepo := &apptest.StockRepo{S: store}
	now := time.Now()

	for i, in := range []struct {
		warehouse string
		kind      entity.MovementKind
		qty       int64
	}{
		{warehouse1, entity.MovementInbound, 10},
		{warehouse1, entity.MovementOutboundSale, 3},
		{warehouse2, entity.MovementInbound, 7},
	} {
		_, _, err := inventory.ApplyDelta(movRepo, stockRepo, inventory.DeltaInput{
			ProductID:   productA,
			WarehouseID: in.warehouse,
			Kind:        in.kind,
			Quantity:    decimal.NewFromInt(in.qty),
			Reference:   "doc",
			Now:         now.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	uc := inventory.NewMovementQueryUseCase(movRepo, stockRepo)
	ctx := context.Background()

	all, err := uc.History(ctx, dto.MovementHistoryRequest{ProductID: productA})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, string(entity.MovementInbound), all[0].Kind, "el más reciente primero")
	assert.Equal(t, warehouse2, all[0].WarehouseID)

	byWarehouse, err := uc.History(ctx, dto.MovementHistoryRequest{
		ProductID:   productA,
		WarehouseID: warehouse1,
	})
	require.NoError(t, err)
	require.Len(t, byWarehouse, 2)
	for _, m := range byWarehouse {
		assert.Equal(t, warehouse1, m.WarehouseID)
	}

	// Paginación.
	paged, err := uc.History(ctx, dto.MovementHistoryRequest{
		ProductID:   productA,
		PageRequest: dto.PageRequest{Limit: 1, Offset: 1},
	})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, string(entity.MovementOutboundSale), paged[0].Kind)

	// Existencias vigentes por bodega.
	records, err := uc.StockByWarehouse(ctx, warehouse1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Quantity.Equal(decimal.NewFromInt(7)), "10 entradas - 3 salidas")
}
