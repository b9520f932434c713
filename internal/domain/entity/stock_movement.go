package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo cerrado de movimiento de inventario. El signo del delta
// se decide con switch exhaustivo (Direction), nunca comparando strings ad hoc.
type MovementKind string

// Tipos de movimiento de inventario.
const (
	MovementInbound         MovementKind = "IN"               // entrada (compra, recepción)
	MovementOutboundSale    MovementKind = "OUT_SALE"         // salida por venta (referencia a la orden)
	MovementTransferOut     MovementKind = "TRANSFER_OUT"     // salida por traslado (referencia al traslado)
	MovementTransferIn      MovementKind = "TRANSFER_IN"      // entrada por traslado
	MovementAdjustmentAdd   MovementKind = "ADJUSTMENT_ADD"   // ajuste manual aprobado (+)
	MovementAdjustmentSub   MovementKind = "ADJUSTMENT_SUB"   // ajuste manual aprobado (-)
	MovementReturn          MovementKind = "RETURN"           // devolución / compensación de cancelación
	MovementCountCorrection MovementKind = "COUNT_CORRECTION" // corrección por conteo físico
)

// IsValid indica si el tipo pertenece al conjunto cerrado.
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementInbound, MovementOutboundSale, MovementTransferOut, MovementTransferIn,
		MovementAdjustmentAdd, MovementAdjustmentSub, MovementReturn, MovementCountCorrection:
		return true
	}
	return false
}

// Direction devuelve +1 para tipos que aumentan stock y -1 para los que lo
// reducen. COUNT_CORRECTION puede ir en ambos sentidos y devuelve 0: su delta
// lo fija la reconciliación, no el tipo.
func (k MovementKind) Direction() int {
	switch k {
	case MovementInbound, MovementTransferIn, MovementAdjustmentAdd, MovementReturn:
		return 1
	case MovementOutboundSale, MovementTransferOut, MovementAdjustmentSub:
		return -1
	case MovementCountCorrection:
		return 0
	}
	return 0
}

// StockMovement es un hecho inmutable del libro de movimientos: cada cambio
// de cantidad con su antes/después. Se crea una vez y nunca se muta ni se
// borra; reproducir los movimientos de un (producto, bodega) en orden de
// creación debe dar la cantidad actual del StockRecord.
type StockMovement struct {
	ID              string
	ProductID       string
	WarehouseID     string
	Kind            MovementKind
	Quantity        decimal.Decimal // delta con signo
	QuantityBefore  decimal.Decimal
	QuantityAfter   decimal.Decimal // invariante: after = before + delta
	DestWarehouseID string          // solo traslados: bodega destino (en el movimiento de salida)
	Reference       string          // id del documento causante: orden, traslado, ajuste, conteo
	Reason          string
	Date            time.Time
	CreatedAt       time.Time
	CreatedBy       string
}
