package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-bodega).
// Stock es el agregado entre bodegas, materializado desde StockRecord; se
// recalcula tras ajustes, conteos y órdenes.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta vigente (se congela en la línea de orden)
	Cost        decimal.Decimal
	Stock       decimal.Decimal // suma de cantidades en todas las bodegas
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
