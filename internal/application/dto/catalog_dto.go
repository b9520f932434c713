package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	UnitMeasure string          `json:"unit_measure,omitempty"`
}

// ProductResponse producto con su stock agregado entre bodegas.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       decimal.Decimal `json:"stock"`
}

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// WarehouseResponse bodega.
type WarehouseResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CustomerResponse cliente con gasto acumulado y rango.
type CustomerResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	TaxID            string          `json:"tax_id"`
	Email            string          `json:"email,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	LifetimeSpending decimal.Decimal `json:"lifetime_spending"`
	Rank             string          `json:"rank"`
}
