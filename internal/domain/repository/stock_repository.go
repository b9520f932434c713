package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por
// producto+bodega. Toda mutación pasa por el libro de movimientos dentro de
// la misma transacción; ningún flujo escribe stock sin su movimiento.
type StockRepository interface {
	// Get devuelve el registro, o uno en cero si no existe todavía.
	Get(productID, warehouseID string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila para la transacción (SELECT FOR UPDATE).
	GetForUpdate(productID, warehouseID string) (*entity.StockRecord, error)
	Upsert(stock *entity.StockRecord) error
	ListByWarehouse(warehouseID string) ([]*entity.StockRecord, error)
	// SumByProduct agregado del producto entre todas las bodegas.
	SumByProduct(productID string) (decimal.Decimal, error)
}
