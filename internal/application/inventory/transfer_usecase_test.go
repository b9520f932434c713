package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/apptest"
	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/events"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

func newTransferUC(store *apptest.MemoryStore, rec *apptest.EventRecorder) *inventory.TransferUseCase {
	var emitter inventory.EventEmitter
	if rec != nil {
		emitter = rec
	}
	return inventory.NewTransferUseCase(
		apptest.NewTxRunner(store),
		&apptest.TransferRepo{S: store},
		&apptest.ProductRepo{S: store},
		&apptest.WarehouseRepo{S: store},
		emitter,
	)
}

func TestTransferCreateValidaciones(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	uc := newTransferUC(store, nil)
	ctx := context.Background()

	// Origen == destino.
	_, err := uc.Create(ctx, testCompany, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse1,
		Lines:           []dto.TransferLineRequest{{ProductID: productA, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin líneas.
	_, err = uc.Create(ctx, testCompany, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Bodega inexistente.
	_, err = uc.Create(ctx, testCompany, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: "wh-inexistente",
		ToWarehouseID:   warehouse2,
		Lines:           []dto.TransferLineRequest{{ProductID: productA, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestTransferCicloCompleto recorre PENDING -> APPROVED -> IN_TRANSIT ->
// COMPLETED y verifica la conservación: el total del producto entre bodegas
// no cambia, solo se redistribuye.
func TestTransferCicloCompleto(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	store.SeedStock(productA, warehouse1, decimal.NewFromInt(20))
	rec := &apptest.EventRecorder{}
	uc := newTransferUC(store, rec)
	ctx := context.Background()

	created, err := uc.Create(ctx, testCompany, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Lines:           []dto.TransferLineRequest{{ProductID: productA, Quantity: decimal.NewFromInt(8)}},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.TransferPending), created.Status)
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(20)),
		"crear no mueve stock")

	approved, err := uc.Approve(ctx, testCompany, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.TransferApproved), approved.Status)

	inTransit, err := uc.MarkInTransit(ctx, testCompany, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.TransferInTransit), inTransit.Status)

	completed, err := uc.Complete(ctx, testCompany, created.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.TransferCompleted), completed.Status)
	require.Len(t, completed.Lines, 1)
	assert.True(t, completed.Lines[0].ReceivedQuantity.Equal(decimal.NewFromInt(8)))

	// Redistribución sin pérdida.
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(12)))
	assert.True(t, store.StockQuantity(productA, warehouse2).Equal(decimal.NewFromInt(8)))

	// Dos movimientos enlazados por el id del traslado: salida con destino y
	// entrada.
	outs, err := (&apptest.MovementRepo{S: store}).ListByReference(created.ID, entity.MovementTransferOut)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, warehouse2, outs[0].DestWarehouseID)
	ins, err := (&apptest.MovementRepo{S: store}).ListByReference(created.ID, entity.MovementTransferIn)
	require.NoError(t, err)
	require.Len(t, ins, 1)

	// Notificación post-commit.
	require.Len(t, rec.Events, 1)
	assert.Equal(t, events.TypeTransferCompleted, rec.Events[0].Type)
}

// TestTransferCompleteAtomico con varias líneas y stock insuficiente en una,
// ninguna línea queda aplicada.
func TestTransferCompleteAtomico(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	const productB = "prod-b"
	store.Products[productB] = &entity.Product{
		ID: productB, CompanyID: testCompany, SKU: "SKU-B", Name: "Producto B",
		Price: decimal.NewFromInt(50),
	}
	store.SeedStock(productA, warehouse1, decimal.NewFromInt(10))
	store.SeedStock(productB, warehouse1, decimal.NewFromInt(2)) // insuficiente
	uc := newTransferUC(store, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, testCompany, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Lines: []dto.TransferLineRequest{
			{ProductID: productA, Quantity: decimal.NewFromInt(5)},
			{ProductID: productB, Quantity: decimal.NewFromInt(6)},
		},
	})
	require.NoError(t, err)
	_, err = uc.Approve(ctx, testCompany, created.ID)
	require.NoError(t, err)

	_, err = uc.Complete(ctx, testCompany, created.ID, testUserID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback total: ni la línea buena quedó aplicada, sin movimientos, el
	// traslado sigue APPROVED.
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(10)))
	assert.True(t, store.StockQuantity(productA, warehouse2).IsZero())
	assert.Empty(t, store.Movements)
	assert.Equal(t, entity.TransferApproved, store.Transfers[created.ID].Status)
}

// TestTransferDeOtraEmpresa completar un traslado ajeno falla sin mover stock.
func TestTransferDeOtraEmpresa(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	store.SeedStock(productA, warehouse1, decimal.NewFromInt(10))
	uc := newTransferUC(store, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, testCompany, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Lines:           []dto.TransferLineRequest{{ProductID: productA, Quantity: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)
	_, err = uc.Approve(ctx, testCompany, created.ID)
	require.NoError(t, err)
	_, err = uc.MarkInTransit(ctx, testCompany, created.ID)
	require.NoError(t, err)

	_, err = uc.Complete(ctx, "company-2", created.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Get(ctx, "company-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Equal(t, entity.TransferInTransit, store.Transfers[created.ID].Status)
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(10)))
	assert.Empty(t, store.Movements)
}

func TestTransferEstadosInvalidos(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	store.SeedStock(productA, warehouse1, decimal.NewFromInt(10))
	uc := newTransferUC(store, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, testCompany, testUserID, dto.CreateTransferRequest{
		FromWarehouseID: warehouse1,
		ToWarehouseID:   warehouse2,
		Lines:           []dto.TransferLineRequest{{ProductID: productA, Quantity: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)

	// Completar sin aprobar.
	_, err = uc.Complete(ctx, testCompany, created.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// En tránsito sin aprobar.
	_, err = uc.MarkInTransit(ctx, testCompany, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Completar dos veces.
	_, err = uc.Approve(ctx, testCompany, created.ID)
	require.NoError(t, err)
	_, err = uc.Complete(ctx, testCompany, created.ID, testUserID)
	require.NoError(t, err)
	_, err = uc.Complete(ctx, testCompany, created.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
