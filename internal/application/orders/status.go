package orders

import (
	"context"
	"time"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// MarkShipping pasa la orden a SHIPPING (solo desde CONFIRMED).
func (uc *OrderUseCase) MarkShipping(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, companyID, id, entity.OrderShipping)
}

// MarkCompleted pasa la orden a COMPLETED (solo desde SHIPPING). Terminal.
func (uc *OrderUseCase) MarkCompleted(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, companyID, id, entity.OrderCompleted)
}

// transition aplica un cambio de estado bajo la guarda de la tabla de
// transiciones; cualquier transición fuera de tabla falla y deja el estado
// intacto.
func (uc *OrderUseCase) transition(ctx context.Context, companyID, id string, to entity.OrderStatus) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
		orderRepo repository.OrderRepository,
		_ repository.InvoiceRepository,
		_ repository.CustomerRepository,
	) error {
		var err error
		order, err = orderRepo.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !entity.CanTransition(order.Status, to) {
			return &domain.StatusTransitionError{
				OrderID: order.ID,
				From:    string(order.Status),
				To:      string(to),
			}
		}
		order.Status = to
		order.UpdatedAt = time.Now()
		return orderRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, ""), nil
}
