package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de venta (máquina de estados cerrada).
type OrderStatus string

// Estados de la orden.
const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipping  OrderStatus = "SHIPPING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// orderTransitions tabla de transiciones válidas. COMPLETED y CANCELLED son
// terminales (sin entradas).
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipping, OrderCancelled},
	OrderShipping:  {OrderCompleted},
}

// CanTransition indica si el cambio de estado from -> to está en la tabla.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order representa una orden de venta con sus líneas y totales calculados.
// El precio unitario se congela al crear la orden: cambios posteriores de
// precio no afectan órdenes existentes.
type Order struct {
	ID         string
	CompanyID  string
	CustomerID string
	Status     OrderStatus
	Lines      []*OrderLine
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal // 10% fijo sobre el subtotal
	Discount   decimal.Decimal // siempre cero; cupones son punto de extensión
	Total      decimal.Decimal
	Reason     string // motivo de cancelación, si aplica
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CreatedBy  string
}

// OrderLine línea de una orden: producto, bodega designada para el despacho
// y precio unitario al momento de la orden.
type OrderLine struct {
	ID          string
	OrderID     string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// OrderTaxRate impuesto fijo aplicado al subtotal de cada orden.
var OrderTaxRate = decimal.NewFromFloat(0.10)
