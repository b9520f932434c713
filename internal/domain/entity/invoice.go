package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de la factura acompañante de una orden.
type InvoiceStatus string

// Estados de factura.
const (
	InvoiceUnpaid    InvoiceStatus = "UNPAID"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// Invoice factura generada al confirmar una orden (vence en 7 días) y
// cancelada junto con ella.
type Invoice struct {
	ID         string
	CompanyID  string
	OrderID    string
	CustomerID string
	Number     string
	Amount     decimal.Decimal
	Status     InvoiceStatus
	IssuedAt   time.Time
	DueDate    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
