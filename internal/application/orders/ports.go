package orders

import (
	"context"

	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de inventario, órdenes, facturación y clientes. La creación y
// cancelación de órdenes tocan todos esos agregados y deben confirmar o
// revertir juntos.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		invoiceRepo repository.InvoiceRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// EventEmitter cola de notificaciones post-commit. Nunca se invoca dentro de
// la transacción; un fallo de entrega no afecta el resultado ya confirmado.
type EventEmitter interface {
	Emit(eventType string, data map[string]any)
}
