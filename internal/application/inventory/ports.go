package inventory

import (
	"context"

	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad: cualquier error hace
// rollback de todas las escrituras de stock y movimientos del flujo.
type TxRunner interface {
	// RunAdjustment transacción para aprobar un ajuste manual.
	RunAdjustment(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error) error

	// RunTransfer transacción para completar un traslado (todas las líneas o
	// ninguna).
	RunTransfer(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		transferRepo repository.StockTransferRepository,
	) error) error

	// RunCount transacción para cerrar un conteo físico con sus correcciones.
	RunCount(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		countRepo repository.InventoryCountRepository,
	) error) error
}

// EventEmitter cola de notificaciones post-commit. Nunca se invoca dentro de
// la transacción; un fallo de entrega no afecta el resultado ya confirmado.
type EventEmitter interface {
	Emit(eventType string, data map[string]any)
}
