package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/events"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Vencimiento de la factura acompañante.
const invoiceDueDays = 7

// OrderUseCase orquestador de la transacción de cumplimiento: crear una
// orden descuenta stock línea por línea vía el libro de movimientos, genera
// la factura y actualiza gasto y rango del cliente, todo como una sola
// unidad; cancelar revierte bajo la guarda de la máquina de estados.
type OrderUseCase struct {
	txRunner      TxRunner
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	customerRepo  repository.CustomerRepository
	events        EventEmitter
}

// NewOrderUseCase construye el caso de uso. events puede ser nil (sin
// notificaciones).
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	customerRepo repository.CustomerRepository,
	emitter EventEmitter,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:      txRunner,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		customerRepo:  customerRepo,
		events:        emitter,
	}
}

// CreateOrder crea la orden en una sola transacción: congela el precio
// vigente en cada línea, calcula subtotal + 10% de impuesto, persiste la
// orden CONFIRMED, descuenta stock por línea en su bodega designada (salida
// OUT_SALE referenciando la orden), sube gasto y rango del cliente y emite
// la factura (UNPAID, vence en 7 días). Si alguna línea no tiene stock, nada
// queda confirmado. La notificación se emite después del commit.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, companyID, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	// Validaciones de entrada, fuera de la tx (solo lectura). El contrato de
	// creación reporta entrada inválida también para referencias desconocidas.
	if in.CustomerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrInvalidInput
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	productsByID := make(map[string]*entity.Product)
	for _, line := range in.Lines {
		if line.ProductID == "" || line.WarehouseID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrInvalidInput
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		productsByID[line.ProductID] = product
		wh, err := uc.warehouseRepo.GetByID(line.WarehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrInvalidInput
		}
		if wh.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	orderID := uuid.New().String() // referencia de los movimientos de salida

	// Precio congelado y totales: subtotal, impuesto fijo 10%, descuento cero
	// (cupones son punto de extensión, no implementado).
	order := &entity.Order{
		ID:         orderID,
		CompanyID:  companyID,
		CustomerID: in.CustomerID,
		Status:     entity.OrderConfirmed,
		Discount:   decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  userID,
	}
	subtotal := decimal.Zero
	for _, line := range in.Lines {
		product := productsByID[line.ProductID]
		lineSubtotal := line.Quantity.Mul(product.Price)
		order.Lines = append(order.Lines, &entity.OrderLine{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			ProductID:   line.ProductID,
			WarehouseID: line.WarehouseID,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			Subtotal:    lineSubtotal,
		})
		subtotal = subtotal.Add(lineSubtotal)
	}
	order.Subtotal = subtotal
	order.Tax = subtotal.Mul(entity.OrderTaxRate).Round(2)
	order.Total = order.Subtotal.Add(order.Tax).Sub(order.Discount)

	var invoice *entity.Invoice
	err = uc.txRunner.RunOrder(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		invoiceRepo repository.InvoiceRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		// Descuento de stock por línea, en orden de línea. La cantidad se
		// relee con bloqueo dentro de la tx: dos órdenes concurrentes sobre el
		// mismo (producto, bodega) serializan en el lock de la fila.
		touched := make(map[string]struct{})
		for _, line := range order.Lines {
			if _, _, err := inventory.ApplyDelta(movRepo, stockRepo, inventory.DeltaInput{
				ProductID:   line.ProductID,
				WarehouseID: line.WarehouseID,
				Kind:        entity.MovementOutboundSale,
				Quantity:    line.Quantity,
				Reference:   orderID,
				CreatedBy:   userID,
				Now:         now,
			}); err != nil {
				return err
			}
			touched[line.ProductID] = struct{}{}
		}
		for productID := range touched {
			if err := inventory.RefreshProductStock(stockRepo, productRepo, productID); err != nil {
				return err
			}
		}

		// Gasto acumulado y rango del cliente, misma tx.
		cust, err := customerRepo.GetForUpdate(order.CustomerID)
		if err != nil {
			return err
		}
		if cust == nil {
			return domain.ErrInvalidInput
		}
		cust.ApplySpending(order.Total)
		cust.UpdatedAt = now
		if err := customerRepo.Update(cust); err != nil {
			return err
		}

		// Factura acompañante.
		invoice = &entity.Invoice{
			ID:         uuid.New().String(),
			CompanyID:  companyID,
			OrderID:    orderID,
			CustomerID: order.CustomerID,
			Number:     fmt.Sprintf("INV-%d", now.Unix()),
			Amount:     order.Total,
			Status:     entity.InvoiceUnpaid,
			IssuedAt:   now,
			DueDate:    now.AddDate(0, 0, invoiceDueDays),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return invoiceRepo.Create(invoice)
	})
	if err != nil {
		return nil, err
	}

	// Notificación post-commit, mejor esfuerzo.
	if uc.events != nil {
		uc.events.Emit(events.TypeOrderCreated, map[string]any{
			"order_id":    order.ID,
			"customer_id": order.CustomerID,
			"total":       order.Total.String(),
		})
	}
	return toOrderResponse(order, invoice.ID), nil
}

func toOrderResponse(order *entity.Order, invoiceID string) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		Subtotal:   order.Subtotal,
		Tax:        order.Tax,
		Discount:   order.Discount,
		Total:      order.Total,
		InvoiceID:  invoiceID,
		CreatedAt:  order.CreatedAt,
		Lines:      make([]dto.OrderLineResponse, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ProductID:   line.ProductID,
			WarehouseID: line.WarehouseID,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}
	return resp
}

// GetOrder devuelve la orden con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toOrderResponse(order, ""), nil
}

// ListByCustomer lista las órdenes de un cliente, de la más reciente a la
// más antigua. El cliente debe pertenecer a la empresa del caller.
func (uc *OrderUseCase) ListByCustomer(ctx context.Context, companyID, customerID string, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.orderRepo.ListByCustomer(customerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, order := range list {
		out = append(out, toOrderResponse(order, ""))
	}
	return out, nil
}
