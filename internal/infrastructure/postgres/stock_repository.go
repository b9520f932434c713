package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, warehouse_id, quantity, reserved, location, updated_at`

// Get obtiene el registro de stock, o uno en cero si aún no existe
// (se crea perezosamente con el primer movimiento de entrada).
func (r *StockRepo) Get(productID, warehouseID string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(query, productID, warehouseID, "get stock")
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE):
// la verificación releer-y-descontar queda atómica frente a transacciones
// concurrentes sobre el mismo (producto, bodega). Sobre una fila que aún
// no existe FOR UPDATE no bloquea nada, así que primero se materializa en
// cero; el ON CONFLICT hace inocua la carrera entre dos primeras entradas.
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockRecord, error) {
	seed := `
		INSERT INTO stock_records (product_id, warehouse_id, quantity, reserved, location, updated_at)
		VALUES ($1, $2, 0, 0, '', now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, productID, warehouseID); err != nil {
		return nil, fmt.Errorf("seed stock for update: %w", err)
	}
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	return r.scanOne(query, productID, warehouseID, "get stock for update")
}

func (r *StockRepo) scanOne(query, productID, warehouseID, op string) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.Reserved, &s.Location, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockRecord{
				ProductID:   productID,
				WarehouseID: warehouseID,
				Quantity:    decimal.Zero,
				Reserved:    decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad (por producto y bodega).
func (r *StockRepo) Upsert(stock *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (product_id, warehouse_id, quantity, reserved, location, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, reserved = EXCLUDED.reserved, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.WarehouseID, stock.Quantity, stock.Reserved, stock.Location)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByWarehouse lista los registros de una bodega.
func (r *StockRepo) ListByWarehouse(warehouseID string) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records WHERE warehouse_id = $1
		ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock by warehouse: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.Reserved, &s.Location, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SumByProduct agregado del producto entre todas las bodegas.
func (r *StockRepo) SumByProduct(productID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_records WHERE product_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum stock by product: %w", err)
	}
	return total, nil
}
