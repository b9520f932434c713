package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// OrderRepository puerto de persistencia para órdenes y sus líneas.
type OrderRepository interface {
	// Create persiste cabecera y líneas.
	Create(order *entity.Order) error
	// GetByID devuelve la orden con sus líneas, o nil si no existe.
	GetByID(id string) (*entity.Order, error)
	// Update actualiza estado y motivo de la cabecera.
	Update(order *entity.Order) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Order, error)
}
