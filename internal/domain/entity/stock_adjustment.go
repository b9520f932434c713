package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentKind familia del ajuste manual: los tipos de adición suman y los
// de sustracción restan (con tope en cero).
type AdjustmentKind string

// Tipos de ajuste.
const (
	AdjustmentAddition    AdjustmentKind = "ADDITION"
	AdjustmentFound       AdjustmentKind = "FOUND"
	AdjustmentReturnIn    AdjustmentKind = "RETURN_IN"
	AdjustmentSubtraction AdjustmentKind = "SUBTRACTION"
	AdjustmentDamaged     AdjustmentKind = "DAMAGED"
	AdjustmentLost        AdjustmentKind = "LOST"
)

// IsValid indica si el tipo pertenece al conjunto cerrado.
func (k AdjustmentKind) IsValid() bool {
	switch k {
	case AdjustmentAddition, AdjustmentFound, AdjustmentReturnIn,
		AdjustmentSubtraction, AdjustmentDamaged, AdjustmentLost:
		return true
	}
	return false
}

// IsAddition true para la familia que aumenta stock (switch exhaustivo).
func (k AdjustmentKind) IsAddition() bool {
	switch k {
	case AdjustmentAddition, AdjustmentFound, AdjustmentReturnIn:
		return true
	case AdjustmentSubtraction, AdjustmentDamaged, AdjustmentLost:
		return false
	}
	return false
}

// MovementKind tipo de movimiento que genera el ajuste al aprobarse.
func (k AdjustmentKind) MovementKind() MovementKind {
	if k.IsAddition() {
		return MovementAdjustmentAdd
	}
	return MovementAdjustmentSub
}

// Apply calcula la cantidad resultante de aplicar el ajuste sobre before.
// La sustracción se limita en cero: restar más de lo que hay deja el stock
// en cero, no falla (contrato documentado del flujo de ajustes).
func (k AdjustmentKind) Apply(before, quantity decimal.Decimal) decimal.Decimal {
	if k.IsAddition() {
		return before.Add(quantity)
	}
	after := before.Sub(quantity)
	if after.IsNegative() {
		return decimal.Zero
	}
	return after
}

// AdjustmentStatus estado del ajuste.
type AdjustmentStatus string

// Estados del ajuste.
const (
	AdjustmentPending   AdjustmentStatus = "PENDING"
	AdjustmentCompleted AdjustmentStatus = "COMPLETED"
	AdjustmentRejected  AdjustmentStatus = "REJECTED"
)

// StockAdjustment propuesta de cambio manual de cantidad que requiere
// aprobación. QuantityBefore/After se llenan al aprobar (la cantidad vigente
// se relee en ese momento, no al proponer, porque pudo haber cambiado).
type StockAdjustment struct {
	ID             string
	CompanyID      string
	ProductID      string
	WarehouseID    string
	Kind           AdjustmentKind
	Quantity       decimal.Decimal // cantidad solicitada, siempre positiva
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Status         AdjustmentStatus
	Reason         string
	RejectReason   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CreatedBy      string
	ApprovedBy     string
}
