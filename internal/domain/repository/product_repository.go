package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock materializa el agregado entre bodegas.
	UpdateStock(productID string, stock decimal.Decimal) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
}
