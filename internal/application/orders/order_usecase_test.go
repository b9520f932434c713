package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/application/apptest"
	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/events"
	"github.com/jhoicas/Comercio-api/internal/application/orders"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

const (
	productA    = "prod-a"
	productB    = "prod-b"
	warehouse1  = "wh-1"
	warehouse2  = "wh-2"
	customer1   = "cust-1"
	testUserID  = "user-1"
	testCompany = "company-1"
)

// newFixture almacén sembrado con catálogo, cliente y stock inicial.
func newFixture() (*apptest.MemoryStore, *orders.OrderUseCase, *apptest.EventRecorder) {
	store := apptest.NewMemoryStore()
	now := time.Now()
	store.Products[productA] = &entity.Product{
		ID: productA, CompanyID: testCompany, SKU: "SKU-A", Name: "Producto A",
		Price: decimal.NewFromInt(100), CreatedAt: now, UpdatedAt: now,
	}
	store.Products[productB] = &entity.Product{
		ID: productB, CompanyID: testCompany, SKU: "SKU-B", Name: "Producto B",
		Price: decimal.NewFromInt(40), CreatedAt: now, UpdatedAt: now,
	}
	store.Warehouses[warehouse1] = &entity.Warehouse{ID: warehouse1, CompanyID: testCompany, Name: "Central"}
	store.Warehouses[warehouse2] = &entity.Warehouse{ID: warehouse2, CompanyID: testCompany, Name: "Norte"}
	store.Customers[customer1] = &entity.Customer{
		ID: customer1, CompanyID: testCompany, Name: "Cliente Uno",
		LifetimeSpending: decimal.Zero, Rank: entity.RankStandard,
	}
	store.SeedStock(productA, warehouse1, decimal.NewFromInt(50))
	store.SeedStock(productB, warehouse2, decimal.NewFromInt(30))

	rec := &apptest.EventRecorder{}
	uc := orders.NewOrderUseCase(
		apptest.NewTxRunner(store),
		&apptest.OrderRepo{S: store},
		&apptest.ProductRepo{S: store},
		&apptest.WarehouseRepo{S: store},
		&apptest.CustomerRepo{S: store},
		rec,
	)
	return store, uc, rec
}

// TestCreateOrder caso feliz: precios congelados, subtotal + 10% de
// impuesto, stock descontado por bodega designada, factura UNPAID a 7 días y
// gasto/rango del cliente actualizados, todo confirmado junto.
func TestCreateOrder(t *testing.T) {
	store, uc, rec := newFixture()
	ctx := context.Background()

	resp, err := uc.CreateOrder(ctx, testCompany, testUserID, dto.CreateOrderRequest{
		CustomerID: customer1,
		Lines: []dto.OrderLineRequest{
			{ProductID: productA, WarehouseID: warehouse1, Quantity: decimal.NewFromInt(10)}, // 1000
			{ProductID: productB, WarehouseID: warehouse2, Quantity: decimal.NewFromInt(5)},  // 200
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderConfirmed), resp.Status)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(1200)))
	assert.True(t, resp.Tax.Equal(decimal.NewFromInt(120)), "impuesto fijo del 10 por ciento")
	assert.True(t, resp.Discount.IsZero())
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(1320)))

	// Stock descontado en la bodega designada de cada línea.
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(40)))
	assert.True(t, store.StockQuantity(productB, warehouse2).Equal(decimal.NewFromInt(25)))

	// Una salida OUT_SALE por línea, referenciando la orden.
	sales, err := (&apptest.MovementRepo{S: store}).ListByReference(resp.ID, entity.MovementOutboundSale)
	require.NoError(t, err)
	assert.Len(t, sales, 2)

	// Agregados de producto rematerializados.
	assert.True(t, store.Products[productA].Stock.Equal(decimal.NewFromInt(40)))

	// Factura acompañante: UNPAID, por el total, vence en 7 días.
	invoice, err := (&apptest.InvoiceRepo{S: store}).GetByOrderID(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, invoice)
	assert.Equal(t, entity.InvoiceUnpaid, invoice.Status)
	assert.True(t, invoice.Amount.Equal(resp.Total))
	assert.WithinDuration(t, invoice.IssuedAt.AddDate(0, 0, 7), invoice.DueDate, time.Second)

	// Gasto y rango del cliente.
	cust := store.Customers[customer1]
	assert.True(t, cust.LifetimeSpending.Equal(decimal.NewFromInt(1320)))
	assert.Equal(t, entity.RankBronze, cust.Rank)

	// Notificación post-commit.
	require.Len(t, rec.Events, 1)
	assert.Equal(t, events.TypeOrderCreated, rec.Events[0].Type)
}

// TestCreateOrderPrecioCongelado cambiar el precio del producto después no
// afecta la orden existente.
func TestCreateOrderPrecioCongelado(t *testing.T) {
	store, uc, _ := newFixture()
	ctx := context.Background()

	resp, err := uc.CreateOrder(ctx, testCompany, testUserID, dto.CreateOrderRequest{
		CustomerID: customer1,
		Lines: []dto.OrderLineRequest{
			{ProductID: productA, WarehouseID: warehouse1, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	store.Products[productA].Price = decimal.NewFromInt(999)

	got, err := uc.GetOrder(ctx, testCompany, resp.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.True(t, got.Lines[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(200)))
}

// TestCreateOrderAtomica con stock insuficiente en la segunda línea, la
// transacción completa se revierte: sin orden, sin movimientos, sin factura
// y con el cliente intacto.
func TestCreateOrderAtomica(t *testing.T) {
	store, uc, rec := newFixture()
	ctx := context.Background()

	_, err := uc.CreateOrder(ctx, testCompany, testUserID, dto.CreateOrderRequest{
		CustomerID: customer1,
		Lines: []dto.OrderLineRequest{
			{ProductID: productA, WarehouseID: warehouse1, Quantity: decimal.NewFromInt(10)},
			{ProductID: productB, WarehouseID: warehouse2, Quantity: decimal.NewFromInt(31)}, // solo hay 30
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, productB, insufficientErr.ProductID)

	// Nada quedó confirmado, ni siquiera la primera línea.
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(50)))
	assert.True(t, store.StockQuantity(productB, warehouse2).Equal(decimal.NewFromInt(30)))
	assert.Empty(t, store.Movements)
	assert.Empty(t, store.Orders)
	assert.Empty(t, store.Invoices)
	assert.True(t, store.Customers[customer1].LifetimeSpending.IsZero())
	assert.Empty(t, rec.Events, "sin commit no hay notificación")
}

func TestCreateOrderValidaciones(t *testing.T) {
	_, uc, _ := newFixture()
	ctx := context.Background()

	// Cliente desconocido: el contrato de creación reporta entrada inválida.
	_, err := uc.CreateOrder(ctx, testCompany, testUserID, dto.CreateOrderRequest{
		CustomerID: "cust-inexistente",
		Lines: []dto.OrderLineRequest{
			{ProductID: productA, WarehouseID: warehouse1, Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Producto desconocido.
	_, err = uc.CreateOrder(ctx, testCompany, testUserID, dto.CreateOrderRequest{
		CustomerID: customer1,
		Lines: []dto.OrderLineRequest{
			{ProductID: "prod-inexistente", WarehouseID: warehouse1, Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad no positiva.
	_, err = uc.CreateOrder(ctx, testCompany, testUserID, dto.CreateOrderRequest{
		CustomerID: customer1,
		Lines: []dto.OrderLineRequest{
			{ProductID: productA, WarehouseID: warehouse1, Quantity: decimal.Zero},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin líneas.
	_, err = uc.CreateOrder(ctx, testCompany, testUserID, dto.CreateOrderRequest{
		CustomerID: customer1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestCancelOrderConRestitucion la cancelación compensa cada salida de venta
// con un RETURN en la misma bodega, cancela la factura y revierte el gasto
// del cliente. El libro conserva la historia completa.
func TestCancelOrderConRestitucion(t *testing.T) {
	store, uc, rec := newFixture()
	ctx := context.Background()

	created, err := uc.CreateOrder(ctx, testCompany, testUserID, dto.CreateOrderRequest{
		CustomerID: customer1,
		Lines: []dto.OrderLineRequest{
			{ProductID: productA, WarehouseID: warehouse1, Quantity: decimal.NewFromInt(10)},
			{ProductID: productB, WarehouseID: warehouse2, Quantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	cancelled, err := uc.CancelOrder(ctx, testCompany, created.ID, testUserID, "cliente desistió", true)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderCancelled), cancelled.Status)

	// Stock restituido exactamente donde se despachó.
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(50)))
	assert.True(t, store.StockQuantity(productB, warehouse2).Equal(decimal.NewFromInt(30)))

	// La historia se compensa, no se borra: 2 salidas + 2 devoluciones.
	returns, err := (&apptest.MovementRepo{S: store}).ListByReference(created.ID, entity.MovementReturn)
	require.NoError(t, err)
	assert.Len(t, returns, 2)
	assert.Len(t, store.Movements, 4)

	// Factura cancelada y gasto revertido con rango recalculado.
	invoice, err := (&apptest.InvoiceRepo{S: store}).GetByOrderID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceCancelled, invoice.Status)
	cust := store.Customers[customer1]
	assert.True(t, cust.LifetimeSpending.IsZero())
	assert.Equal(t, entity.RankStandard, cust.Rank)

	// order.created y order.cancelled.
	require.Len(t, rec.Events, 2)
	assert.Equal(t, events.TypeOrderCancelled, rec.Events[1].Type)
}

// TestCancelOrderSinRestitucion el stock se queda como está (mercancía no
// recuperable), pero factura y gasto sí se revierten.
func TestCancelOrderSinRestitucion(t *testing.T) {
	store, uc, _ := newFixture()
	ctx := context.Background()

	created, err := uc.CreateOrder(ctx, testCompany, testUserID, dto.CreateOrderRequest{
		CustomerID: customer1,
		Lines: []dto.OrderLineRequest{
			{ProductID: productA, WarehouseID: warehouse1, Quantity: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	_, err = uc.CancelOrder(ctx, testCompany, created.ID, testUserID, "mercancía dañada en despacho", false)
	require.NoError(t, err)

	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(40)),
		"sin restitución el stock no vuelve")
	assert.Len(t, store.Movements, 1, "solo las salidas originales")

	invoice, err := (&apptest.InvoiceRepo{S: store}).GetByOrderID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceCancelled, invoice.Status)
	assert.True(t, store.Customers[customer1].LifetimeSpending.IsZero())
}

// TestOrdenDeOtraEmpresa las operaciones por id sobre una orden ajena fallan
// sin efectos: ni cancelación, ni transición, ni lectura, ni pago de factura.
func TestOrdenDeOtraEmpresa(t *testing.T) {
	store, uc, _ := newFixture()
	ctx := context.Background()

	created, err := uc.CreateOrder(ctx, testCompany, testUserID, dto.CreateOrderRequest{
		CustomerID: customer1,
		Lines: []dto.OrderLineRequest{
			{ProductID: productA, WarehouseID: warehouse1, Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	_, err = uc.CancelOrder(ctx, "company-2", created.ID, testUserID, "ajena", true)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.MarkShipping(ctx, "company-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetOrder(ctx, "company-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetInvoice(ctx, "company-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.MarkInvoicePaid(ctx, "company-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Nada cambió: la orden sigue confirmada, la factura impaga y el stock
	// descontado de la venta original.
	assert.Equal(t, entity.OrderConfirmed, store.Orders[created.ID].Status)
	invoice, err := (&apptest.InvoiceRepo{S: store}).GetByOrderID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceUnpaid, invoice.Status)
	assert.True(t, store.StockQuantity(productA, warehouse1).Equal(decimal.NewFromInt(47)))
}

// TestTransicionesDeEstado SHIPPING y COMPLETED bajo la tabla; cancelar una
// orden despachada se rechaza con el error tipado y sin efectos.
func TestTransicionesDeEstado(t *testing.T) {
	store, uc, _ := newFixture()
	ctx := context.Background()

	created, err := uc.CreateOrder(ctx, testCompany, testUserID, dto.CreateOrderRequest{
		CustomerID: customer1,
		Lines: []dto.OrderLineRequest{
			{ProductID: productA, WarehouseID: warehouse1, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	// CONFIRMED -> COMPLETED directo no existe.
	_, err = uc.MarkCompleted(ctx, testCompany, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	shipped, err := uc.MarkShipping(ctx, testCompany, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderShipping), shipped.Status)

	// Despachada ya no se puede cancelar.
	_, err = uc.CancelOrder(ctx, testCompany, created.ID, testUserID, "tarde", true)
	require.Error(t, err)
	var transitionErr *domain.StatusTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, string(entity.OrderShipping), transitionErr.From)
	assert.Equal(t, entity.OrderShipping, store.Orders[created.ID].Status, "el estado queda intacto")

	completed, err := uc.MarkCompleted(ctx, testCompany, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderCompleted), completed.Status)

	// COMPLETED es terminal.
	_, err = uc.MarkShipping(ctx, testCompany, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}
