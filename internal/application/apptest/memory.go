// Package apptest provee dobles en memoria de los puertos de persistencia y
// un TxRunner con snapshot/rollback, para probar los casos de uso sin base
// de datos. El rollback de verdad (restaurar el estado previo cuando la
// función transaccional falla) permite afirmar atomicidad en los tests.
package apptest

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// MemoryStore estado compartido por todos los repositorios en memoria.
// No es seguro para uso concurrente; los tests son secuenciales.
type MemoryStore struct {
	Stocks      map[string]*entity.StockRecord // clave producto|bodega
	Movements   []*entity.StockMovement
	Products    map[string]*entity.Product
	Warehouses  map[string]*entity.Warehouse
	Customers   map[string]*entity.Customer
	Orders      map[string]*entity.Order
	Invoices    map[string]*entity.Invoice
	Adjustments map[string]*entity.StockAdjustment
	Transfers   map[string]*entity.StockTransfer
	Counts      map[string]*entity.InventoryCount
}

// NewMemoryStore crea un almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Stocks:      make(map[string]*entity.StockRecord),
		Products:    make(map[string]*entity.Product),
		Warehouses:  make(map[string]*entity.Warehouse),
		Customers:   make(map[string]*entity.Customer),
		Orders:      make(map[string]*entity.Order),
		Invoices:    make(map[string]*entity.Invoice),
		Adjustments: make(map[string]*entity.StockAdjustment),
		Transfers:   make(map[string]*entity.StockTransfer),
		Counts:      make(map[string]*entity.InventoryCount),
	}
}

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

// SeedStock fija la cantidad de un producto en una bodega.
func (s *MemoryStore) SeedStock(productID, warehouseID string, quantity decimal.Decimal) {
	s.Stocks[stockKey(productID, warehouseID)] = &entity.StockRecord{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
		Reserved:    decimal.Zero,
	}
}

// StockQuantity devuelve la cantidad vigente (cero si no hay registro).
func (s *MemoryStore) StockQuantity(productID, warehouseID string) decimal.Decimal {
	if rec, ok := s.Stocks[stockKey(productID, warehouseID)]; ok {
		return rec.Quantity
	}
	return decimal.Zero
}

// snapshot copia profunda del estado, para restaurar en rollback.
func (s *MemoryStore) snapshot() *MemoryStore {
	c := NewMemoryStore()
	for k, v := range s.Stocks {
		cp := *v
		c.Stocks[k] = &cp
	}
	for _, m := range s.Movements {
		cp := *m
		c.Movements = append(c.Movements, &cp)
	}
	for k, v := range s.Products {
		cp := *v
		c.Products[k] = &cp
	}
	for k, v := range s.Warehouses {
		cp := *v
		c.Warehouses[k] = &cp
	}
	for k, v := range s.Customers {
		cp := *v
		c.Customers[k] = &cp
	}
	for k, v := range s.Orders {
		cp := *v
		cp.Lines = nil
		for _, l := range v.Lines {
			lc := *l
			cp.Lines = append(cp.Lines, &lc)
		}
		c.Orders[k] = &cp
	}
	for k, v := range s.Invoices {
		cp := *v
		c.Invoices[k] = &cp
	}
	for k, v := range s.Adjustments {
		cp := *v
		c.Adjustments[k] = &cp
	}
	for k, v := range s.Transfers {
		cp := *v
		cp.Lines = nil
		for _, l := range v.Lines {
			lc := *l
			cp.Lines = append(cp.Lines, &lc)
		}
		c.Transfers[k] = &cp
	}
	for k, v := range s.Counts {
		cp := *v
		cp.Lines = nil
		for _, l := range v.Lines {
			lc := *l
			cp.Lines = append(cp.Lines, &lc)
		}
		c.Counts[k] = &cp
	}
	return c
}

// restore reemplaza el estado con el snapshot.
func (s *MemoryStore) restore(snap *MemoryStore) {
	s.Stocks = snap.Stocks
	s.Movements = snap.Movements
	s.Products = snap.Products
	s.Warehouses = snap.Warehouses
	s.Customers = snap.Customers
	s.Orders = snap.Orders
	s.Invoices = snap.Invoices
	s.Adjustments = snap.Adjustments
	s.Transfers = snap.Transfers
	s.Counts = snap.Counts
}

// ──────────────────────────────────────────────────────────────────────────
// StockRepository
// ──────────────────────────────────────────────────────────────────────────

// StockRepo doble en memoria de repository.StockRepository.
type StockRepo struct{ S *MemoryStore }

var _ repository.StockRepository = (*StockRepo)(nil)

func (r *StockRepo) Get(productID, warehouseID string) (*entity.StockRecord, error) {
	if rec, ok := r.S.Stocks[stockKey(productID, warehouseID)]; ok {
		cp := *rec
		return &cp, nil
	}
	return &entity.StockRecord{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    decimal.Zero,
		Reserved:    decimal.Zero,
	}, nil
}

func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockRecord, error) {
	return r.Get(productID, warehouseID)
}

func (r *StockRepo) Upsert(stock *entity.StockRecord) error {
	cp := *stock
	r.S.Stocks[stockKey(stock.ProductID, stock.WarehouseID)] = &cp
	return nil
}

func (r *StockRepo) ListByWarehouse(warehouseID string) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for key, rec := range r.S.Stocks {
		if strings.HasSuffix(key, "|"+warehouseID) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *StockRepo) SumByProduct(productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for key, rec := range r.S.Stocks {
		if strings.HasPrefix(key, productID+"|") {
			total = total.Add(rec.Quantity)
		}
	}
	return total, nil
}

// ──────────────────────────────────────────────────────────────────────────
// StockMovementRepository
// ──────────────────────────────────────────────────────────────────────────

// MovementRepo doble en memoria de repository.StockMovementRepository.
type MovementRepo struct{ S *MemoryStore }

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(movement *entity.StockMovement) error {
	cp := *movement
	r.S.Movements = append(r.S.Movements, &cp)
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.S.Movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	// Del más reciente al más antiguo: orden inverso de inserción.
	for i := len(r.S.Movements) - 1; i >= 0; i-- {
		m := r.S.Movements[i]
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.WarehouseID != "" && m.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.From != nil && m.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.Date.After(*filter.To) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MovementRepo) ListByReference(reference string, kind entity.MovementKind) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.S.Movements {
		if m.Reference == reference && m.Kind == kind {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────
// Catálogo: productos, bodegas, clientes
// ──────────────────────────────────────────────────────────────────────────

// ProductRepo doble en memoria de repository.ProductRepository.
type ProductRepo struct{ S *MemoryStore }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(product *entity.Product) error {
	cp := *product
	r.S.Products[product.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.S.Products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.S.Products {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	cp := *product
	r.S.Products[product.ID] = &cp
	return nil
}

func (r *ProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	if p, ok := r.S.Products[productID]; ok {
		p.Stock = stock
	}
	return nil
}

func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.S.Products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

// WarehouseRepo doble en memoria de repository.WarehouseRepository.
type WarehouseRepo struct{ S *MemoryStore }

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	cp := *warehouse
	r.S.Warehouses[warehouse.ID] = &cp
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.S.Warehouses[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	cp := *warehouse
	r.S.Warehouses[warehouse.ID] = &cp
	return nil
}

func (r *WarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.S.Warehouses {
		if w.CompanyID == companyID {
			cp := *w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

// CustomerRepo doble en memoria de repository.CustomerRepository.
type CustomerRepo struct{ S *MemoryStore }

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

func (r *CustomerRepo) Create(customer *entity.Customer) error {
	cp := *customer
	r.S.Customers[customer.ID] = &cp
	return nil
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.S.Customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *CustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r *CustomerRepo) Update(customer *entity.Customer) error {
	cp := *customer
	r.S.Customers[customer.ID] = &cp
	return nil
}

func (r *CustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.S.Customers {
		if c.CompanyID == companyID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
