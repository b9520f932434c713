package apptest

import (
	"context"

	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/application/orders"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// TxRunner implementación en memoria de inventory.TxRunner y orders.TxRunner
// con semántica de rollback real: si la función falla, el estado del almacén
// se restaura al snapshot previo. Así los tests pueden afirmar que una
// transacción fallida no deja escrituras parciales.
type TxRunner struct {
	S *MemoryStore
}

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *MemoryStore) *TxRunner {
	return &TxRunner{S: s}
}

func (r *TxRunner) run(fn func() error) error {
	snap := r.S.snapshot()
	if err := fn(); err != nil {
		r.S.restore(snap)
		return err
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
	return r.run(func() error {
		return fn(&MovementRepo{S: r.S}, &StockRepo{S: r.S}, &ProductRepo{S: r.S}, &AdjustmentRepo{S: r.S})
	})
}

// RunTransfer transacción para completar un traslado.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	transferRepo repository.StockTransferRepository,
) error) error {
	return r.run(func() error {
		return fn(&MovementRepo{S: r.S}, &StockRepo{S: r.S}, &ProductRepo{S: r.S}, &TransferRepo{S: r.S})
	})
}

// RunCount transacción para cerrar un conteo físico.
func (r *TxRunner) RunCount(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	countRepo repository.InventoryCountRepository,
) error) error {
	return r.run(func() error {
		return fn(&MovementRepo{S: r.S}, &StockRepo{S: r.S}, &ProductRepo{S: r.S}, &CountRepo{S: r.S})
	})
}

// RunOrder transacción de cumplimiento de órdenes.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(func() error {
		return fn(&MovementRepo{S: r.S}, &StockRepo{S: r.S}, &ProductRepo{S: r.S},
			&OrderRepo{S: r.S}, &InvoiceRepo{S: r.S}, &CustomerRepo{S: r.S})
	})
}

// EventRecorder acumula los eventos emitidos, para afirmarlos en tests.
type EventRecorder struct {
	Events []RecordedEvent
}

// RecordedEvent tipo y payload de un evento emitido.
type RecordedEvent struct {
	Type string
	Data map[string]any
}

// Emit registra el evento.
func (r *EventRecorder) Emit(eventType string, data map[string]any) {
	r.Events = append(r.Events, RecordedEvent{Type: eventType, Data: data})
}
