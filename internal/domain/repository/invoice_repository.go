package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// InvoiceRepository puerto de persistencia para facturas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByOrderID devuelve la factura acompañante de la orden, o nil.
	GetByOrderID(orderID string) (*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
}
