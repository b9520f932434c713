package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// StockTransferRepository puerto de persistencia para traslados y líneas.
type StockTransferRepository interface {
	// Create persiste cabecera y líneas.
	Create(transfer *entity.StockTransfer) error
	// GetByID devuelve el traslado con sus líneas, o nil si no existe.
	GetByID(id string) (*entity.StockTransfer, error)
	// Update actualiza estado de la cabecera.
	Update(transfer *entity.StockTransfer) error
	// UpdateLine actualiza la cantidad recibida de una línea.
	UpdateLine(line *entity.TransferLine) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.StockTransfer, error)
}
