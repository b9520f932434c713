package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// InventoryCountRepository puerto de persistencia para conteos físicos.
type InventoryCountRepository interface {
	// Create persiste cabecera y líneas.
	Create(count *entity.InventoryCount) error
	// GetByID devuelve el conteo con sus líneas, o nil si no existe.
	GetByID(id string) (*entity.InventoryCount, error)
	// Update actualiza estado, fecha de cierre y aprobador.
	Update(count *entity.InventoryCount) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryCount, error)
}
