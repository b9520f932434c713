package inventory

import (
	"context"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura: el libro de movimientos
// (auditoría, siempre del más reciente al más antiguo) y las existencias
// vigentes por bodega.
type MovementQueryUseCase struct {
	movementRepo repository.StockMovementRepository
	stockRepo    repository.StockRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movementRepo repository.StockMovementRepository, stockRepo repository.StockRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movementRepo: movementRepo, stockRepo: stockRepo}
}

// StockByWarehouse lista las existencias vigentes de una bodega.
func (uc *MovementQueryUseCase) StockByWarehouse(ctx context.Context, warehouseID string) ([]*dto.StockRecordResponse, error) {
	records, err := uc.stockRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, &dto.StockRecordResponse{
			ProductID:   rec.ProductID,
			WarehouseID: rec.WarehouseID,
			Quantity:    rec.Quantity,
			UpdatedAt:   rec.UpdatedAt,
		})
	}
	return out, nil
}

// History lista movimientos filtrando por producto, bodega y rango de fechas.
func (uc *MovementQueryUseCase) History(ctx context.Context, in dto.MovementHistoryRequest) ([]*dto.MovementResponse, error) {
	in.DefaultPage()
	list, err := uc.movementRepo.List(repository.MovementFilter{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		From:        in.From,
		To:          in.To,
		Limit:       in.Limit,
		Offset:      in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		WarehouseID:     m.WarehouseID,
		Kind:            string(m.Kind),
		Quantity:        m.Quantity,
		QuantityBefore:  m.QuantityBefore,
		QuantityAfter:   m.QuantityAfter,
		DestWarehouseID: m.DestWarehouseID,
		Reference:       m.Reference,
		Date:            m.Date,
		CreatedBy:       m.CreatedBy,
	}
}
