package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountStatus estado del conteo físico.
type CountStatus string

// Estados del conteo.
const (
	CountDraft     CountStatus = "DRAFT"
	CountCompleted CountStatus = "COMPLETED"
)

// InventoryCount conteo físico de una bodega. Al crearse se fotografía la
// cantidad de sistema por producto; al completarse, cada discrepancia genera
// un movimiento de corrección incondicional (puede subir o bajar el stock).
type InventoryCount struct {
	ID               string
	CompanyID        string
	WarehouseID      string
	Status           CountStatus
	Lines            []*CountLine
	TotalDiscrepancy decimal.Decimal // suma de |actual - sistema|
	CreatedAt        time.Time
	CompletedAt      *time.Time
	CreatedBy        string
	ApprovedBy       string
}

// CountLine línea del conteo: cantidad de sistema al crear vs. contada.
type CountLine struct {
	ID             string
	CountID        string
	ProductID      string
	SystemQuantity decimal.Decimal
	ActualQuantity decimal.Decimal
}

// Discrepancy diferencia absoluta entre lo contado y el sistema.
func (l *CountLine) Discrepancy() decimal.Decimal {
	return l.ActualQuantity.Sub(l.SystemQuantity).Abs()
}
