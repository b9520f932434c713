package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/events"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// TransferUseCase flujo de traslados entre bodegas:
// PENDING -> APPROVED -> (IN_TRANSIT) -> COMPLETED. Completar aplica todas
// las líneas como una sola unidad atómica: por cada línea, salida en origen y
// entrada en destino como dos movimientos enlazados por el id del traslado.
type TransferUseCase struct {
	txRunner      TxRunner
	transferRepo  repository.StockTransferRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	events        EventEmitter
}

// NewTransferUseCase construye el caso de uso. events puede ser nil (sin
// notificaciones).
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.StockTransferRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	events EventEmitter,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		events:        events,
	}
}

// Create valida y persiste el traslado en PENDING. Falla con ErrInvalidInput
// si origen == destino o no hay líneas, y con ErrNotFound si alguna bodega o
// producto no existe.
func (uc *TransferUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}

	fromWh, err := uc.warehouseRepo.GetByID(in.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	if fromWh == nil {
		return nil, domain.ErrNotFound
	}
	toWh, err := uc.warehouseRepo.GetByID(in.ToWarehouseID)
	if err != nil {
		return nil, err
	}
	if toWh == nil {
		return nil, domain.ErrNotFound
	}
	if fromWh.CompanyID != companyID || toWh.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	transfer := &entity.StockTransfer{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Status:          entity.TransferPending,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatedBy:       userID,
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
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
		transfer.Lines = append(transfer.Lines, &entity.TransferLine{
			ID:                uuid.New().String(),
			TransferID:        transfer.ID,
			ProductID:         line.ProductID,
			RequestedQuantity: line.Quantity,
		})
	}

	if err := uc.transferRepo.Create(transfer); err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// Approve pasa el traslado de PENDING a APPROVED. Cualquier otro estado
// origen falla con ErrInvalidState.
func (uc *TransferUseCase) Approve(ctx context.Context, companyID, id string) (*dto.TransferResponse, error) {
	return uc.setStatus(companyID, id, entity.TransferPending, entity.TransferApproved)
}

// MarkInTransit pasa el traslado de APPROVED a IN_TRANSIT.
func (uc *TransferUseCase) MarkInTransit(ctx context.Context, companyID, id string) (*dto.TransferResponse, error) {
	return uc.setStatus(companyID, id, entity.TransferApproved, entity.TransferInTransit)
}

func (uc *TransferUseCase) setStatus(companyID, id string, from, to entity.TransferStatus) (*dto.TransferResponse, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	if transfer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if transfer.Status != from {
		return nil, domain.ErrInvalidState
	}
	transfer.Status = to
	transfer.UpdatedAt = time.Now()
	if err := uc.transferRepo.Update(transfer); err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// Complete aplica el traslado: por cada línea verifica existencia en origen,
// descuenta con movimiento TRANSFER_OUT (referenciando la bodega destino),
// abona en destino con TRANSFER_IN y fija la cantidad recibida. Requiere
// APPROVED o IN_TRANSIT. Si una línea falla (ej. stock insuficiente) toda la
// transacción se revierte: no existe el traslado parcialmente completado.
func (uc *TransferUseCase) Complete(ctx context.Context, companyID, id, userID string) (*dto.TransferResponse, error) {
	var result *entity.StockTransfer
	err := uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		transfer, err := transferRepo.GetByID(id)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if transfer.Status != entity.TransferApproved && transfer.Status != entity.TransferInTransit {
			return domain.ErrInvalidState
		}

		now := time.Now()
		for _, line := range transfer.Lines {
			// Salida en origen; con stock insuficiente el error identifica el
			// producto y la transacción completa se revierte.
			if _, _, err := ApplyDelta(movRepo, stockRepo, DeltaInput{
				ProductID:       line.ProductID,
				WarehouseID:     transfer.FromWarehouseID,
				Kind:            entity.MovementTransferOut,
				Quantity:        line.RequestedQuantity,
				DestWarehouseID: transfer.ToWarehouseID,
				Reference:       transfer.ID,
				CreatedBy:       userID,
				Now:             now,
			}); err != nil {
				return err
			}
			// Entrada en destino (crea el registro si no existe).
			if _, _, err := ApplyDelta(movRepo, stockRepo, DeltaInput{
				ProductID:   line.ProductID,
				WarehouseID: transfer.ToWarehouseID,
				Kind:        entity.MovementTransferIn,
				Quantity:    line.RequestedQuantity,
				Reference:   transfer.ID,
				CreatedBy:   userID,
				Now:         now,
			}); err != nil {
				return err
			}
			line.ReceivedQuantity = line.RequestedQuantity
			if err := transferRepo.UpdateLine(line); err != nil {
				return err
			}
		}

		transfer.Status = entity.TransferCompleted
		transfer.UpdatedAt = now
		if err := transferRepo.Update(transfer); err != nil {
			return err
		}
		result = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notificación post-commit, mejor esfuerzo.
	if uc.events != nil {
		uc.events.Emit(events.TypeTransferCompleted, map[string]any{
			"transfer_id":       result.ID,
			"from_warehouse_id": result.FromWarehouseID,
			"to_warehouse_id":   result.ToWarehouseID,
			"lines":             len(result.Lines),
		})
	}
	return toTransferResponse(result), nil
}

// Get devuelve un traslado por id.
func (uc *TransferUseCase) Get(ctx context.Context, companyID, id string) (*dto.TransferResponse, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	if transfer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toTransferResponse(transfer), nil
}

// List lista los traslados de la empresa, del más reciente al más antiguo.
func (uc *TransferUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.TransferResponse, error) {
	page.DefaultPage()
	list, err := uc.transferRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransferResponse, 0, len(list))
	for _, transfer := range list {
		out = append(out, toTransferResponse(transfer))
	}
	return out, nil
}

func toTransferResponse(transfer *entity.StockTransfer) *dto.TransferResponse {
	resp := &dto.TransferResponse{
		ID:              transfer.ID,
		FromWarehouseID: transfer.FromWarehouseID,
		ToWarehouseID:   transfer.ToWarehouseID,
		Status:          string(transfer.Status),
		Lines:           make([]dto.TransferLineResponse, 0, len(transfer.Lines)),
	}
	for _, line := range transfer.Lines {
		resp.Lines = append(resp.Lines, dto.TransferLineResponse{
			ProductID:         line.ProductID,
			RequestedQuantity: line.RequestedQuantity,
			ReceivedQuantity:  line.ReceivedQuantity,
		})
	}
	return resp
}
