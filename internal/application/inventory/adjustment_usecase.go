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

// AdjustmentUseCase flujo de ajustes manuales: proponer, aprobar, rechazar.
// La aplicación del ajuste (aprobar) corre en una transacción con bloqueo de
// fila; proponer y rechazar no tocan stock.
type AdjustmentUseCase struct {
	txRunner       TxRunner
	adjustmentRepo repository.StockAdjustmentRepository
	productRepo    repository.ProductRepository
	warehouseRepo  repository.WarehouseRepository
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	adjustmentRepo repository.StockAdjustmentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:       txRunner,
		adjustmentRepo: adjustmentRepo,
		productRepo:    productRepo,
		warehouseRepo:  warehouseRepo,
	}
}

// Propose crea un ajuste en estado PENDING. QuantityBefore/After quedan sin
// llenar: la cantidad vigente se relee al aprobar, no ahora.
func (uc *AdjustmentUseCase) Propose(ctx context.Context, companyID, userID string, in dto.ProposeAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	kind := entity.AdjustmentKind(in.Kind)
	if in.ProductID == "" || in.WarehouseID == "" || !kind.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
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
	adj := &entity.StockAdjustment{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Kind:        kind,
		Quantity:    in.Quantity,
		Status:      entity.AdjustmentPending,
		Reason:      in.Reason,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   userID,
	}
	if err := uc.adjustmentRepo.Create(adj); err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adj), nil
}

// Approve aplica el ajuste: relee la cantidad vigente con bloqueo como
// quantityBefore, aplica el delta con signo (la sustracción se limita en
// cero), registra el movimiento y rematerializa el agregado del producto.
// Todo en una sola transacción. Falla con ErrInvalidState fuera de PENDING y
// con ErrForbidden si el ajuste es de otra empresa.
func (uc *AdjustmentUseCase) Approve(ctx context.Context, companyID, id, approvedBy string) (*dto.AdjustmentResponse, error) {
	var result *entity.StockAdjustment
	err := uc.txRunner.RunAdjustment(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error {
		adj, err := adjRepo.GetByID(id)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if adj.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if adj.Status != entity.AdjustmentPending {
			return domain.ErrInvalidState
		}

		now := time.Now()

		stock, err := stockRepo.GetForUpdate(adj.ProductID, adj.WarehouseID)
		if err != nil {
			return err
		}
		adj.QuantityBefore = stock.Quantity
		adj.QuantityAfter = adj.Kind.Apply(stock.Quantity, adj.Quantity)

		// La cantidad efectiva sale del mismo cálculo con tope: la sustracción
		// por encima de lo disponible deja el stock en cero, no falla. Si el
		// tope absorbe todo (stock ya en cero), el ajuste se completa sin
		// asiento: un movimiento de delta cero no aporta nada al libro.
		effective := adj.QuantityAfter.Sub(adj.QuantityBefore).Abs()

		if effective.GreaterThan(decimal.Zero) {
			if _, _, err := ApplyDelta(movRepo, stockRepo, DeltaInput{
				ProductID:   adj.ProductID,
				WarehouseID: adj.WarehouseID,
				Kind:        adj.Kind.MovementKind(),
				Quantity:    effective,
				Reference:   adj.ID,
				Reason:      adj.Reason,
				CreatedBy:   approvedBy,
				Now:         now,
			}); err != nil {
				return err
			}
		}

		adj.Status = entity.AdjustmentCompleted
		adj.ApprovedBy = approvedBy
		adj.UpdatedAt = now
		if err := adjRepo.Update(adj); err != nil {
			return err
		}
		if err := RefreshProductStock(stockRepo, productRepo, adj.ProductID); err != nil {
			return err
		}
		result = adj
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toAdjustmentResponse(result), nil
}

// Reject marca el ajuste como rechazado, sin efecto sobre stock. Terminal.
func (uc *AdjustmentUseCase) Reject(ctx context.Context, companyID, id, userID, reason string) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	if adj.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if adj.Status != entity.AdjustmentPending {
		return nil, domain.ErrInvalidState
	}
	adj.Status = entity.AdjustmentRejected
	adj.RejectReason = reason
	adj.ApprovedBy = userID
	adj.UpdatedAt = time.Now()
	if err := uc.adjustmentRepo.Update(adj); err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adj), nil
}

// Get devuelve un ajuste por id.
func (uc *AdjustmentUseCase) Get(ctx context.Context, companyID, id string) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	if adj.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toAdjustmentResponse(adj), nil
}

// List lista los ajustes de la empresa, del más reciente al más antiguo.
func (uc *AdjustmentUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.AdjustmentResponse, error) {
	page.DefaultPage()
	list, err := uc.adjustmentRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AdjustmentResponse, 0, len(list))
	for _, adj := range list {
		out = append(out, toAdjustmentResponse(adj))
	}
	return out, nil
}

func toAdjustmentResponse(adj *entity.StockAdjustment) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:             adj.ID,
		ProductID:      adj.ProductID,
		WarehouseID:    adj.WarehouseID,
		Kind:           string(adj.Kind),
		Quantity:       adj.Quantity,
		QuantityBefore: adj.QuantityBefore,
		QuantityAfter:  adj.QuantityAfter,
		Status:         string(adj.Status),
		Reason:         adj.Reason,
	}
}
