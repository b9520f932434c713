package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// CustomerRepository puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetForUpdate bloquea la fila del cliente dentro de la transacción
	// (actualización de gasto acumulado y rango).
	GetForUpdate(id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error)
}
