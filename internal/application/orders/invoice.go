package orders

import (
	"context"
	"time"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// GetInvoice devuelve la factura acompañante de la orden.
func (uc *OrderUseCase) GetInvoice(ctx context.Context, companyID, orderID string) (*dto.InvoiceResponse, error) {
	var invoice *entity.Invoice
	err := uc.txRunner.RunOrder(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.OrderRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.CustomerRepository,
	) error {
		var err error
		invoice, err = invoiceRepo.GetByOrderID(orderID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.CompanyID != companyID {
			return domain.ErrForbidden
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// MarkInvoicePaid marca como pagada la factura de la orden. Solo una factura
// UNPAID puede pagarse; una cancelada o ya pagada deja el estado intacto.
func (uc *OrderUseCase) MarkInvoicePaid(ctx context.Context, companyID, orderID string) (*dto.InvoiceResponse, error) {
	var invoice *entity.Invoice
	err := uc.txRunner.RunOrder(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.OrderRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.CustomerRepository,
	) error {
		var err error
		invoice, err = invoiceRepo.GetByOrderID(orderID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if invoice.Status != entity.InvoiceUnpaid {
			return domain.ErrInvalidState
		}
		invoice.Status = entity.InvoicePaid
		invoice.UpdatedAt = time.Now()
		return invoiceRepo.Update(invoice)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

func toInvoiceResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:      invoice.ID,
		OrderID: invoice.OrderID,
		Number:  invoice.Number,
		Amount:  invoice.Amount,
		Status:  string(invoice.Status),
		DueDate: invoice.DueDate,
	}
}
