package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/apptest"
	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

func seedCatalog(store *apptest.MemoryStore) {
	now := time.Now()
	store.Products[productA] = &entity.Product{
		ID: productA, CompanyID: testCompany, SKU: "SKU-A", Name: "Producto A",
		Price: decimal.NewFromInt(100), CreatedAt: now, UpdatedAt: now,
	}
	store.Warehouses[warehouse1] = &entity.Warehouse{
		ID: warehouse1, CompanyID: testCompany, Name: "Bodega Central", CreatedAt: now, UpdatedAt: now,
	}
	store.Warehouses[warehouse2] = &entity.Warehouse{
		ID: warehouse2, CompanyID: testCompany, Name: "Bodega Norte", CreatedAt: now, UpdatedAt: now,
	}
}

func newAdjustmentUC(store *apptest.MemoryStore) *inventory.AdjustmentUseCase {
	return inventory.NewAdjustmentUseCase(
		apptest.NewTxRunner(store),
		&apptest.AdjustmentRepo{S: store},
		&apptest.ProductRepo{S: store},
		&apptest.WarehouseRepo{S: store},
	)
}

func TestAdjustmentProposeYApprove(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	store.SeedStock(productA, warehouse1, decimal.NewFromInt(10))
	uc := newAdjustmentUC(store)
	ctx := context.Background()

	proposed, err := uc.Propose(ctx, testCompany, testUserID, dto.ProposeAdjustmentRequest{
		ProductID:   productA,
		WarehouseID: warehouse1,
		Kind:        string(entity.AdjustmentFound),
		Quantity:    decimal.NewFromInt(5),
		Reason:      "mercancía encontrada en recepción",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AdjustmentPending), proposed.Status)
	// Antes/después se llenan al aprobar, no al proponer.
	assert.True(t, proposed.QuantityBefore.IsZero())
	assert.True(t, proposed.QuantityAfter.IsZero())
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(10)),
		"proponer no toca stock")

	approved, err := uc.Approve(ctx, testCompany, proposed.ID, "supervisor-1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.AdjustmentCompleted), approved.Status)
	assert.True(t, approved.QuantityBefore.Equal(decimal.NewFromInt(10)))
	assert.True(t, approved.QuantityAfter.Equal(decimal.NewFromInt(15)))
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(15)))

	// El agregado del producto quedó rematerializado.
	assert.True(t, store.Products[productA].Stock.Equal(decimal.NewFromInt(15)))

	// El movimiento referencia al ajuste.
	require.Len(t, store.Movements, 1)
	assert.Equal(t, entity.MovementAdjustmentAdd, store.Movements[0].Kind)
	assert.Equal(t, proposed.ID, store.Movements[0].Reference)

	// Re-aprobar falla: el ajuste ya no está pendiente.
	_, err = uc.Approve(ctx, testCompany, proposed.ID, "supervisor-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// TestAdjustmentApproveConTope la sustracción mayor al disponible se absorbe
// dejando el stock en cero.
func TestAdjustmentApproveConTope(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	store.SeedStock(productA, warehouse1, decimal.NewFromInt(4))
	uc := newAdjustmentUC(store)
	ctx := context.Background()

	proposed, err := uc.Propose(ctx, testCompany, testUserID, dto.ProposeAdjustmentRequest{
		ProductID:   productA,
		WarehouseID: warehouse1,
		Kind:        string(entity.AdjustmentLost),
		Quantity:    decimal.NewFromInt(9),
		Reason:      "pérdida reportada",
	})
	require.NoError(t, err)

	approved, err := uc.Approve(ctx, testCompany, proposed.ID, "supervisor-1")
	require.NoError(t, err)
	assert.True(t, approved.QuantityBefore.Equal(decimal.NewFromInt(4)))
	assert.True(t, approved.QuantityAfter.IsZero(), "tope en cero")
	assert.True(t, store.StockQuantity(productA, warehouse1).IsZero())

	// El movimiento registra el delta efectivo (-4), no el solicitado.
	require.Len(t, store.Movements, 1)
	assert.True(t, store.Movements[0].Quantity.Equal(decimal.NewFromInt(-4)))
}

func TestAdjustmentReject(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	store.SeedStock(productA, warehouse1, decimal.NewFromInt(10))
	uc := newAdjustmentUC(store)
	ctx := context.Background()

	proposed, err := uc.Propose(ctx, testCompany, testUserID, dto.ProposeAdjustmentRequest{
		ProductID:   productA,
		WarehouseID: warehouse1,
		Kind:        string(entity.AdjustmentSubtraction),
		Quantity:    decimal.NewFromInt(3),
		Reason:      "ajuste dudoso",
	})
	require.NoError(t, err)

	rejected, err := uc.Reject(ctx, testCompany, proposed.ID, "supervisor-1", "sin soporte documental")
	require.NoError(t, err)
	assert.Equal(t, string(entity.AdjustmentRejected), rejected.Status)
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(10)),
		"rechazar no toca stock")
	assert.Empty(t, store.Movements)

	// Rechazado es terminal: ni aprobar ni re-rechazar.
	_, err = uc.Approve(ctx, testCompany, proposed.ID, "supervisor-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = uc.Reject(ctx, testCompany, proposed.ID, "supervisor-1", "otra vez")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// TestAdjustmentApproveSinDelta con el stock ya en cero la sustracción se
// absorbe entera: el ajuste se completa pero no se escribe movimiento.
func TestAdjustmentApproveSinDelta(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	uc := newAdjustmentUC(store)
	ctx := context.Background()

	proposed, err := uc.Propose(ctx, testCompany, testUserID, dto.ProposeAdjustmentRequest{
		ProductID:   productA,
		WarehouseID: warehouse1,
		Kind:        string(entity.AdjustmentLost),
		Quantity:    decimal.NewFromInt(5),
		Reason:      "pérdida sin existencias",
	})
	require.NoError(t, err)

	approved, err := uc.Approve(ctx, testCompany, proposed.ID, "supervisor-1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.AdjustmentCompleted), approved.Status)
	assert.True(t, approved.QuantityBefore.IsZero())
	assert.True(t, approved.QuantityAfter.IsZero())
	assert.Empty(t, store.Movements, "delta cero no genera asiento")
}

// TestAdjustmentDeOtraEmpresa las operaciones por id rechazan documentos de
// otra empresa sin tocar su estado.
func TestAdjustmentDeOtraEmpresa(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	store.SeedStock(productA, warehouse1, decimal.NewFromInt(10))
	uc := newAdjustmentUC(store)
	ctx := context.Background()

	proposed, err := uc.Propose(ctx, testCompany, testUserID, dto.ProposeAdjustmentRequest{
		ProductID:   productA,
		WarehouseID: warehouse1,
		Kind:        string(entity.AdjustmentFound),
		Quantity:    decimal.NewFromInt(5),
		Reason:      "mercancía encontrada",
	})
	require.NoError(t, err)

	_, err = uc.Approve(ctx, "company-2", proposed.ID, "supervisor-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Reject(ctx, "company-2", proposed.ID, "supervisor-2", "ajeno")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Get(ctx, "company-2", proposed.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El ajuste sigue pendiente y el stock intacto para su dueño.
	got, err := uc.Get(ctx, testCompany, proposed.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AdjustmentPending), got.Status)
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(10)))
}

var errRepoCaido = errors.New("conexión perdida")

type productRepoCaido struct {
	apptest.ProductRepo
}

func (r *productRepoCaido) GetByID(string) (*entity.Product, error) {
	return nil, errRepoCaido
}

// TestAdjustmentProposeFallaDeRepo un fallo de infraestructura se propaga tal
// cual, no se disfraza de validación ni de no-encontrado.
func TestAdjustmentProposeFallaDeRepo(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	uc := inventory.NewAdjustmentUseCase(
		apptest.NewTxRunner(store),
		&apptest.AdjustmentRepo{S: store},
		&productRepoCaido{apptest.ProductRepo{S: store}},
		&apptest.WarehouseRepo{S: store},
	)

	_, err := uc.Propose(context.Background(), testCompany, testUserID, dto.ProposeAdjustmentRequest{
		ProductID:   productA,
		WarehouseID: warehouse1,
		Kind:        string(entity.AdjustmentAddition),
		Quantity:    decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, errRepoCaido)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustmentProposeValidaciones(t *testing.T) {
	store := apptest.NewMemoryStore()
	seedCatalog(store)
	uc := newAdjustmentUC(store)
	ctx := context.Background()

	// Tipo fuera del conjunto cerrado.
	_, err := uc.Propose(ctx, testCompany, testUserID, dto.ProposeAdjustmentRequest{
		ProductID: productA, WarehouseID: warehouse1, Kind: "RECOUNT",
		Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad no positiva.
	_, err = uc.Propose(ctx, testCompany, testUserID, dto.ProposeAdjustmentRequest{
		ProductID: productA, WarehouseID: warehouse1, Kind: string(entity.AdjustmentAddition),
		Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Producto inexistente.
	_, err = uc.Propose(ctx, testCompany, testUserID, dto.ProposeAdjustmentRequest{
		ProductID: uuid.New().String(), WarehouseID: warehouse1,
		Kind: string(entity.AdjustmentAddition), Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
