package repository

import (
	"time"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// MovementFilter filtros para consultar el libro de movimientos.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// StockMovementRepository puerto de persistencia del libro de movimientos.
// Solo inserta y consulta: los movimientos nunca se mutan ni se borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// List devuelve movimientos del más reciente al más antiguo.
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	// ListByReference localiza los movimientos causados por un documento
	// (ej. la cancelación busca las salidas de venta de una orden para saber
	// desde qué bodega se despachó cada línea).
	ListByReference(reference string, kind entity.MovementKind) ([]*entity.StockMovement, error)
}
