package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus estado de un traslado entre bodegas.
type TransferStatus string

// Estados del traslado.
const (
	TransferPending   TransferStatus = "PENDING"
	TransferApproved  TransferStatus = "APPROVED"
	TransferInTransit TransferStatus = "IN_TRANSIT"
	TransferCompleted TransferStatus = "COMPLETED"
)

// StockTransfer traslado de inventario de una bodega a otra. Invariante:
// FromWarehouseID != ToWarehouseID. Al completarse, todas las líneas se
// aplican como una sola unidad atómica (dos movimientos enlazados por línea).
type StockTransfer struct {
	ID              string
	CompanyID       string
	FromWarehouseID string
	ToWarehouseID   string
	Status          TransferStatus
	Lines           []*TransferLine
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedBy       string
}

// TransferLine línea de traslado. ReceivedQuantity se fija al completar.
type TransferLine struct {
	ID                string
	TransferID        string
	ProductID         string
	RequestedQuantity decimal.Decimal
	ReceivedQuantity  decimal.Decimal
}
