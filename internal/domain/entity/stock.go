package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa la existencia actual de un producto en una bodega.
// Se crea de forma perezosa con el primer movimiento de entrada y nunca se
// elimina físicamente, solo se deja en cero.
type StockRecord struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal // cantidad en mano, nunca negativa tras commit
	Reserved    decimal.Decimal
	Location    string // etiqueta opcional de ubicación/estante
	UpdatedAt   time.Time
}

// Available devuelve la cantidad disponible (en mano menos reservada).
func (s *StockRecord) Available() decimal.Decimal {
	return s.Quantity.Sub(s.Reserved)
}
