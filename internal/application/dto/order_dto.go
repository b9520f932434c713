package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de una orden: producto, bodega designada y cantidad.
type OrderLineRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Lines      []OrderLineRequest `json:"lines"`
}

// CancelOrderRequest body para POST /api/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason       string `json:"reason"`
	RestoreStock bool   `json:"restore_stock"`
}

// OrderLineResponse línea con el precio congelado al momento de la orden.
type OrderLineResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse orden completa con totales y factura acompañante.
type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Status     string              `json:"status"`
	Lines      []OrderLineResponse `json:"lines"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Tax        decimal.Decimal     `json:"tax"`
	Discount   decimal.Decimal     `json:"discount"`
	Total      decimal.Decimal     `json:"total"`
	InvoiceID  string              `json:"invoice_id,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// InvoiceResponse factura acompañante de una orden.
type InvoiceResponse struct {
	ID      string          `json:"id"`
	OrderID string          `json:"order_id"`
	Number  string          `json:"number"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status"`
	DueDate time.Time       `json:"due_date"`
}
