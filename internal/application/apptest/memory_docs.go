package apptest

import (
	"sort"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Dobles en memoria de los documentos de negocio: órdenes, facturas,
// ajustes, traslados y conteos.

// OrderRepo doble en memoria de repository.OrderRepository.
type OrderRepo struct{ S *MemoryStore }

var _ repository.OrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) Create(order *entity.Order) error {
	r.S.Orders[order.ID] = copyOrder(order)
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	if o, ok := r.S.Orders[id]; ok {
		return copyOrder(o), nil
	}
	return nil, nil
}

func (r *OrderRepo) Update(order *entity.Order) error {
	stored, ok := r.S.Orders[order.ID]
	if !ok {
		return nil
	}
	stored.Status = order.Status
	stored.Reason = order.Reason
	stored.UpdatedAt = order.UpdatedAt
	return nil
}

func (r *OrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.S.Orders {
		if o.CustomerID == customerID {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func copyOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Lines = nil
	for _, l := range o.Lines {
		lc := *l
		cp.Lines = append(cp.Lines, &lc)
	}
	return &cp
}

// InvoiceRepo doble en memoria de repository.InvoiceRepository.
type InvoiceRepo struct{ S *MemoryStore }

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	cp := *invoice
	r.S.Invoices[invoice.ID] = &cp
	return nil
}

func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	if inv, ok := r.S.Invoices[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r *InvoiceRepo) GetByOrderID(orderID string) (*entity.Invoice, error) {
	for _, inv := range r.S.Invoices {
		if inv.OrderID == orderID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	cp := *invoice
	r.S.Invoices[invoice.ID] = &cp
	return nil
}

// AdjustmentRepo doble en memoria de repository.StockAdjustmentRepository.
type AdjustmentRepo struct{ S *MemoryStore }

var _ repository.StockAdjustmentRepository = (*AdjustmentRepo)(nil)

func (r *AdjustmentRepo) Create(adjustment *entity.StockAdjustment) error {
	cp := *adjustment
	r.S.Adjustments[adjustment.ID] = &cp
	return nil
}

func (r *AdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	if a, ok := r.S.Adjustments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *AdjustmentRepo) Update(adjustment *entity.StockAdjustment) error {
	cp := *adjustment
	r.S.Adjustments[adjustment.ID] = &cp
	return nil
}

func (r *AdjustmentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	var out []*entity.StockAdjustment
	for _, a := range r.S.Adjustments {
		if a.CompanyID == companyID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

// TransferRepo doble en memoria de repository.StockTransferRepository.
type TransferRepo struct{ S *MemoryStore }

var _ repository.StockTransferRepository = (*TransferRepo)(nil)

func (r *TransferRepo) Create(transfer *entity.StockTransfer) error {
	r.S.Transfers[transfer.ID] = copyTransfer(transfer)
	return nil
}

func (r *TransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	if t, ok := r.S.Transfers[id]; ok {
		return copyTransfer(t), nil
	}
	return nil, nil
}

func (r *TransferRepo) Update(transfer *entity.StockTransfer) error {
	stored, ok := r.S.Transfers[transfer.ID]
	if !ok {
		return nil
	}
	stored.Status = transfer.Status
	stored.Notes = transfer.Notes
	stored.UpdatedAt = transfer.UpdatedAt
	return nil
}

func (r *TransferRepo) UpdateLine(line *entity.TransferLine) error {
	for _, t := range r.S.Transfers {
		for _, l := range t.Lines {
			if l.ID == line.ID {
				l.ReceivedQuantity = line.ReceivedQuantity
				return nil
			}
		}
	}
	return nil
}

func (r *TransferRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockTransfer, error) {
	var out []*entity.StockTransfer
	for _, t := range r.S.Transfers {
		if t.CompanyID == companyID {
			out = append(out, copyTransfer(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func copyTransfer(t *entity.StockTransfer) *entity.StockTransfer {
	cp := *t
	cp.Lines = nil
	for _, l := range t.Lines {
		lc := *l
		cp.Lines = append(cp.Lines, &lc)
	}
	return &cp
}

// CountRepo doble en memoria de repository.InventoryCountRepository.
type CountRepo struct{ S *MemoryStore }

var _ repository.InventoryCountRepository = (*CountRepo)(nil)

func (r *CountRepo) Create(count *entity.InventoryCount) error {
	r.S.Counts[count.ID] = copyCount(count)
	return nil
}

func (r *CountRepo) GetByID(id string) (*entity.InventoryCount, error) {
	if c, ok := r.S.Counts[id]; ok {
		return copyCount(c), nil
	}
	return nil, nil
}

func (r *CountRepo) Update(count *entity.InventoryCount) error {
	r.S.Counts[count.ID] = copyCount(count)
	return nil
}

func (r *CountRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryCount, error) {
	var out []*entity.InventoryCount
	for _, c := range r.S.Counts {
		if c.WarehouseID == warehouseID {
			out = append(out, copyCount(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func copyCount(c *entity.InventoryCount) *entity.InventoryCount {
	cp := *c
	cp.Lines = nil
	for _, l := range c.Lines {
		lc := *l
		cp.Lines = append(cp.Lines, &lc)
	}
	return &cp
}
