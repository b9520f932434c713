package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// CountUseCase reconciliación por conteo físico: fotografía la cantidad de
// sistema al crear y, al completar, corrige cada discrepancia con un
// movimiento COUNT_CORRECTION incondicional (sin verificación de faltantes).
type CountUseCase struct {
	txRunner      TxRunner
	countRepo     repository.InventoryCountRepository
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewCountUseCase construye el caso de uso.
func NewCountUseCase(
	txRunner TxRunner,
	countRepo repository.InventoryCountRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *CountUseCase {
	return &CountUseCase{
		txRunner:      txRunner,
		countRepo:     countRepo,
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Create crea el conteo en DRAFT: por cada línea guarda la cantidad de
// sistema vigente y la contada, y acumula la discrepancia total.
func (uc *CountUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateCountRequest) (*dto.CountResponse, error) {
	if in.WarehouseID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if wh.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	count := &entity.InventoryCount{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		WarehouseID:      in.WarehouseID,
		Status:           entity.CountDraft,
		TotalDiscrepancy: decimal.Zero,
		CreatedAt:        now,
		CreatedBy:        userID,
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || line.ActualQuantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		stock, err := uc.stockRepo.Get(line.ProductID, in.WarehouseID)
		if err != nil {
			return nil, err
		}
		cl := &entity.CountLine{
			ID:             uuid.New().String(),
			CountID:        count.ID,
			ProductID:      line.ProductID,
			SystemQuantity: stock.Quantity,
			ActualQuantity: line.ActualQuantity,
		}
		count.Lines = append(count.Lines, cl)
		count.TotalDiscrepancy = count.TotalDiscrepancy.Add(cl.Discrepancy())
	}

	if err := uc.countRepo.Create(count); err != nil {
		return nil, err
	}
	return toCountResponse(count), nil
}

// Complete cierra el conteo: por cada línea con discrepancia fija la
// cantidad en el valor contado (corrección, no delta con tope) y registra el
// movimiento; rematerializa el agregado de cada producto corregido. Todo en
// una transacción. Re-completar falla con ErrInvalidState.
func (uc *CountUseCase) Complete(ctx context.Context, companyID, id, approvedBy string) (*dto.CountResponse, error) {
	var result *entity.InventoryCount
	err := uc.txRunner.RunCount(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		countRepo repository.InventoryCountRepository,
	) error {
		count, err := countRepo.GetByID(id)
		if err != nil {
			return err
		}
		if count == nil {
			return domain.ErrNotFound
		}
		if count.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if count.Status != entity.CountDraft {
			return domain.ErrInvalidState
		}

		now := time.Now()
		corrected := make(map[string]struct{})
		for _, line := range count.Lines {
			if line.ActualQuantity.Equal(line.SystemQuantity) {
				continue
			}
			if _, _, err := Correct(movRepo, stockRepo, CorrectionInput{
				ProductID:   line.ProductID,
				WarehouseID: count.WarehouseID,
				Actual:      line.ActualQuantity,
				Reference:   count.ID,
				Reason:      "conteo físico",
				CreatedBy:   approvedBy,
				Now:         now,
			}); err != nil {
				return err
			}
			corrected[line.ProductID] = struct{}{}
		}
		for productID := range corrected {
			if err := RefreshProductStock(stockRepo, productRepo, productID); err != nil {
				return err
			}
		}

		count.Status = entity.CountCompleted
		count.CompletedAt = &now
		count.ApprovedBy = approvedBy
		if err := countRepo.Update(count); err != nil {
			return err
		}
		result = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCountResponse(result), nil
}

// Get devuelve un conteo por id.
func (uc *CountUseCase) Get(ctx context.Context, companyID, id string) (*dto.CountResponse, error) {
	count, err := uc.countRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	if count.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toCountResponse(count), nil
}

// ListByWarehouse lista los conteos de una bodega, del más reciente al más
// antiguo.
func (uc *CountUseCase) ListByWarehouse(ctx context.Context, warehouseID string, page dto.PageRequest) ([]*dto.CountResponse, error) {
	page.DefaultPage()
	list, err := uc.countRepo.ListByWarehouse(warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CountResponse, 0, len(list))
	for _, count := range list {
		out = append(out, toCountResponse(count))
	}
	return out, nil
}

func toCountResponse(count *entity.InventoryCount) *dto.CountResponse {
	resp := &dto.CountResponse{
		ID:               count.ID,
		WarehouseID:      count.WarehouseID,
		Status:           string(count.Status),
		TotalDiscrepancy: count.TotalDiscrepancy,
		Lines:            make([]dto.CountLineResponse, 0, len(count.Lines)),
		CompletedAt:      count.CompletedAt,
	}
	for _, line := range count.Lines {
		resp.Lines = append(resp.Lines, dto.CountLineResponse{
			ProductID:      line.ProductID,
			SystemQuantity: line.SystemQuantity,
			ActualQuantity: line.ActualQuantity,
		})
	}
	return resp
}
