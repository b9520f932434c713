package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// StockAdjustmentRepository puerto de persistencia para ajustes manuales.
type StockAdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment) error
	GetByID(id string) (*entity.StockAdjustment, error)
	Update(adjustment *entity.StockAdjustment) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.StockAdjustment, error)
}
