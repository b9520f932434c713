package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProposeAdjustmentRequest body para POST /api/stock/adjustments.
type ProposeAdjustmentRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Kind        string          `json:"kind"` // ADDITION, FOUND, RETURN_IN, SUBTRACTION, DAMAGED, LOST
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
}

// RejectAdjustmentRequest body para rechazar un ajuste pendiente.
type RejectAdjustmentRequest struct {
	Reason string `json:"reason"`
}

// AdjustmentResponse ajuste manual con antes/después (llenos al aprobar).
type AdjustmentResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	WarehouseID    string          `json:"warehouse_id"`
	Kind           string          `json:"kind"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Status         string          `json:"status"`
	Reason         string          `json:"reason"`
}

// TransferLineRequest línea de un traslado a crear.
type TransferLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateTransferRequest body para POST /api/stock/transfers.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	Lines           []TransferLineRequest `json:"lines"`
	Notes           string                `json:"notes,omitempty"`
}

// TransferLineResponse línea con cantidad solicitada y recibida.
type TransferLineResponse struct {
	ProductID         string          `json:"product_id"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
}

// TransferResponse traslado con sus líneas.
type TransferResponse struct {
	ID              string                 `json:"id"`
	FromWarehouseID string                 `json:"from_warehouse_id"`
	ToWarehouseID   string                 `json:"to_warehouse_id"`
	Status          string                 `json:"status"`
	Lines           []TransferLineResponse `json:"lines"`
}

// CountLineRequest cantidad contada físicamente para un producto.
type CountLineRequest struct {
	ProductID      string          `json:"product_id"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
}

// CreateCountRequest body para POST /api/stock/counts.
type CreateCountRequest struct {
	WarehouseID string             `json:"warehouse_id"`
	Lines       []CountLineRequest `json:"lines"`
}

// CountLineResponse línea con cantidad de sistema fotografiada y contada.
type CountLineResponse struct {
	ProductID      string          `json:"product_id"`
	SystemQuantity decimal.Decimal `json:"system_quantity"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
}

// CountResponse conteo con discrepancia total.
type CountResponse struct {
	ID               string              `json:"id"`
	WarehouseID      string              `json:"warehouse_id"`
	Status           string              `json:"status"`
	TotalDiscrepancy decimal.Decimal     `json:"total_discrepancy"`
	Lines            []CountLineResponse `json:"lines"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty"`
}

// MovementHistoryRequest filtros para GET /api/stock/movements.
type MovementHistoryRequest struct {
	ProductID   string     `query:"product_id"`
	WarehouseID string     `query:"warehouse_id"`
	From        *time.Time `query:"from"`
	To          *time.Time `query:"to"`
	PageRequest
}

// StockRecordResponse existencia vigente de un producto en una bodega.
type StockRecordResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MovementResponse un asiento del libro de movimientos.
type MovementResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	Kind            string          `json:"kind"`
	Quantity        decimal.Decimal `json:"quantity"`
	QuantityBefore  decimal.Decimal `json:"quantity_before"`
	QuantityAfter   decimal.Decimal `json:"quantity_after"`
	DestWarehouseID string          `json:"dest_warehouse_id,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	Date            time.Time       `json:"date"`
	CreatedBy       string          `json:"created_by,omitempty"`
}
