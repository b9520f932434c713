package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas). Todos abortan la
// transacción completa: nada parcial llega a commit.
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrForbidden               = errors.New("recurso de otra empresa")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrConflict                = errors.New("conflicto con el estado actual")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrInvalidState            = errors.New("estado inválido para la operación")
	ErrInvalidStatusTransition = errors.New("transición de estado inválida")
)

// InsufficientStockError identifica producto, bodega y faltante para que el
// caller arme el mensaje sin volver a consultar.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: producto %s en bodega %s (solicitado %s, disponible %s)",
		e.ProductID, e.WarehouseID, e.Requested, e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Shortfall cantidad faltante para cubrir lo solicitado.
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// StatusTransitionError transición rechazada por la máquina de estados de la
// orden; el estado queda intacto.
type StatusTransitionError struct {
	OrderID string
	From    string
	To      string
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("transición de estado inválida en orden %s: %s -> %s", e.OrderID, e.From, e.To)
}

// Unwrap permite errors.Is(err, ErrInvalidStatusTransition).
func (e *StatusTransitionError) Unwrap() error { return ErrInvalidStatusTransition }
