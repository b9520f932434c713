package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/apptest"
	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

func newCountUC(store *apptest.MemoryStore) *inventory.CountUseCase {
	return inventory.NewCountUseCase(
		apptest.NewTxRunner(store),
		&apptest.CountRepo{S: store},
		&apptest.StockRepo{S: store},
		&apptest.ProductRepo{S: store},
		&apptest.WarehouseRepo{S: store},
	)
}

// TestCountCreateYComplete el conteo fotografía la cantidad de sistema al
// crear y al completarse corrige cada discrepancia, hacia arriba o hacia
// abajo, con un movimiento COUNT_CORRECTION.
func TestCountCreateYComplete(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	const productB = "prod-b"
	store.Products[productB] = &entity.Product{
		ID: productB, CompanyID: testCompany, SKU: "SKU-B", Name: "Producto B",
		Price: decimal.NewFromInt(50),
	}
	store.SeedStock(productA, warehouse1, decimal.NewFromInt(10))
	store.SeedStock(productB, warehouse1, decimal.NewFromInt(7))
	uc := newCountUC(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, testCompany, testUserID, dto.CreateCountRequest{
		WarehouseID: warehouse1,
		Lines: []dto.CountLineRequest{
			{ProductID: productA, ActualQuantity: decimal.NewFromInt(12)}, // sobrante +2
			{ProductID: productB, ActualQuantity: decimal.NewFromInt(4)},  // faltante -3
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.CountDraft), created.Status)
	assert.True(t, created.TotalDiscrepancy.Equal(decimal.NewFromInt(5)), "|+2| + |-3|")
	require.Len(t, created.Lines, 2)
	assert.True(t, created.Lines[0].SystemQuantity.Equal(decimal.NewFromInt(10)),
		"la cantidad de sistema queda fotografiada")

	// Borrador no toca stock.
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(10)))
	assert.Empty(t, store.Movements)

	completed, err := uc.Complete(ctx, testCompany, created.ID, "supervisor-1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.CountCompleted), completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// El stock quedó fijado en lo contado, en ambos sentidos.
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(12)))
	assert.True(t, store.StockQuantity(productB, warehouse1).Equal(decimal.NewFromInt(4)))

	// Un COUNT_CORRECTION por línea discrepante, referenciando el conteo.
	corrections, err := (&apptest.MovementRepo{S: store}).ListByReference(created.ID, entity.MovementCountCorrection)
	require.NoError(t, err)
	require.Len(t, corrections, 2)
	for _, m := range corrections {
		assert.True(t, m.QuantityAfter.Equal(m.QuantityBefore.Add(m.Quantity)))
	}

	// Los agregados de producto quedaron rematerializados.
	assert.True(t, store.Products[productA].Stock.Equal(decimal.NewFromInt(12)))
	assert.True(t, store.Products[productB].Stock.Equal(decimal.NewFromInt(4)))

	// Re-completar falla.
	_, err = uc.Complete(ctx, testCompany, created.ID, "supervisor-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// TestCountSinDiscrepancia líneas exactas no generan movimientos.
func TestCountSinDiscrepancia(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	store.SeedStock(productA, warehouse1, decimal.NewFromInt(10))
	uc := newCountUC(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, testCompany, testUserID, dto.CreateCountRequest{
		WarehouseID: warehouse1,
		Lines: []dto.CountLineRequest{
			{ProductID: productA, ActualQuantity: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.True(t, created.TotalDiscrepancy.IsZero())

	_, err = uc.Complete(ctx, testCompany, created.ID, "supervisor-1")
	require.NoError(t, err)
	assert.Empty(t, store.Movements, "sin discrepancia no hay correcciones")
}

// TestCountDeOtraEmpresa completar un conteo ajeno falla sin corregir nada.
func TestCountDeOtraEmpresa(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	store.SeedStock(productA, warehouse1, decimal.NewFromInt(10))
	uc := newCountUC(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, testCompany, testUserID, dto.CreateCountRequest{
		WarehouseID: warehouse1,
		Lines: []dto.CountLineRequest{
			{ProductID: productA, ActualQuantity: decimal.NewFromInt(6)},
		},
	})
	require.NoError(t, err)

	_, err = uc.Complete(ctx, "company-2", created.ID, "supervisor-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Get(ctx, "company-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Equal(t, entity.CountDraft, store.Counts[created.ID].Status)
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(10)))
	assert.Empty(t, store.Movements)
}

func TestCountValidaciones(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	uc := newCountUC(store)
	ctx := context.Background()

	// Cantidad contada negativa.
	_, err := uc.Create(ctx, testCompany, testUserID, dto.CreateCountRequest{
		WarehouseID: warehouse1,
		Lines: []dto.CountLineRequest{
			{ProductID: productA, ActualQuantity: decimal.NewFromInt(-1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Bodega inexistente.
	_, err = uc.Create(ctx, testCompany, testUserID, dto.CreateCountRequest{
		WarehouseID: "wh-inexistente",
		Lines: []dto.CountLineRequest{
			{ProductID: productA, ActualQuantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Conteo inexistente.
	_, err = uc.Complete(ctx, testCompany, "conteo-inexistente", "supervisor-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
