package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/application/orders"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and orders.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repositorios atados a la tx. Commit si fn retorna nil, Rollback si no: las
// escrituras de stock, movimientos y agregados del flujo confirman o se
// revierten juntas.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAdjustment transacción para aprobar un ajuste manual.
func (r *TxRunner) RunAdjustment(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	adjRepo repository.StockAdjustmentRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewStockMovementRepository(q),
			NewStockRepository(q),
			NewProductRepository(q),
			NewStockAdjustmentRepository(q),
		)
	})
}

// RunTransfer transacción para completar un traslado.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	transferRepo repository.StockTransferRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewStockMovementRepository(q),
			NewStockRepository(q),
			NewProductRepository(q),
			NewStockTransferRepository(q),
		)
	})
}

// RunCount transacción para cerrar un conteo físico.
func (r *TxRunner) RunCount(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	countRepo repository.InventoryCountRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewStockMovementRepository(q),
			NewStockRepository(q),
			NewProductRepository(q),
			NewInventoryCountRepository(q),
		)
	})
}

// RunOrder transacción de cumplimiento de órdenes: inventario, orden,
// factura y cliente en la misma unidad.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewStockMovementRepository(q),
			NewStockRepository(q),
			NewProductRepository(q),
			NewOrderRepository(q),
			NewInvoiceRepository(q),
			NewCustomerRepository(q),
		)
	})
}
