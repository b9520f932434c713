package orders

import (
	"context"
	"time"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/events"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// CancelOrder cancela una orden bajo la guarda de la máquina de estados
// (solo PENDING o CONFIRMED). En una transacción: si restoreStock y la orden
// estaba CONFIRMED, localiza en el libro cada salida OUT_SALE de la orden
// para recuperar desde qué bodega se despachó, y la compensa con un
// movimiento RETURN (la historia nunca se borra, solo se compensa hacia
// adelante); marca la orden CANCELLED, cancela la factura acompañante y
// revierte el gasto del cliente (con tope en cero) recalculando su rango.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, companyID, id, userID, reason string, restoreStock bool) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		invoiceRepo repository.InvoiceRepository,
		customerRepo repository.CustomerRepository,
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
		if !entity.CanTransition(order.Status, entity.OrderCancelled) {
			return &domain.StatusTransitionError{
				OrderID: order.ID,
				From:    string(order.Status),
				To:      string(entity.OrderCancelled),
			}
		}
		wasConfirmed := order.Status == entity.OrderConfirmed
		now := time.Now()

		if restoreStock && wasConfirmed {
			// Lectura explícita de compensación: las salidas de venta de esta
			// orden dicen producto, bodega y cantidad exacta a restituir.
			sales, err := movRepo.ListByReference(order.ID, entity.MovementOutboundSale)
			if err != nil {
				return err
			}
			touched := make(map[string]struct{})
			for _, sale := range sales {
				if _, _, err := inventory.ApplyDelta(movRepo, stockRepo, inventory.DeltaInput{
					ProductID:   sale.ProductID,
					WarehouseID: sale.WarehouseID,
					Kind:        entity.MovementReturn,
					Quantity:    sale.Quantity.Abs(),
					Reference:   order.ID,
					Reason:      reason,
					CreatedBy:   userID,
					Now:         now,
				}); err != nil {
					return err
				}
				touched[sale.ProductID] = struct{}{}
			}
			for productID := range touched {
				if err := inventory.RefreshProductStock(stockRepo, productRepo, productID); err != nil {
					return err
				}
			}
		}

		order.Status = entity.OrderCancelled
		order.Reason = reason
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		invoice, err := invoiceRepo.GetByOrderID(order.ID)
		if err != nil {
			return err
		}
		if invoice != nil && invoice.Status != entity.InvoiceCancelled {
			invoice.Status = entity.InvoiceCancelled
			invoice.UpdatedAt = now
			if err := invoiceRepo.Update(invoice); err != nil {
				return err
			}
		}

		// El incremento de gasto solo ocurrió al confirmar; la reversión
		// igual va con tope en cero dentro de ApplySpending.
		if wasConfirmed {
			cust, err := customerRepo.GetForUpdate(order.CustomerID)
			if err != nil {
				return err
			}
			if cust != nil {
				cust.ApplySpending(order.Total.Neg())
				cust.UpdatedAt = now
				if err := customerRepo.Update(cust); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.events != nil {
		uc.events.Emit(events.TypeOrderCancelled, map[string]any{
			"order_id":    order.ID,
			"customer_id": order.CustomerID,
			"reason":      reason,
		})
	}
	return toOrderResponse(order, ""), nil
}
