package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.InventoryCountRepository = (*InventoryCountRepo)(nil)

// InventoryCountRepo implementación de InventoryCountRepository sobre PostgreSQL (usable con pool o tx).
type InventoryCountRepo struct {
	q Querier
}

// NewInventoryCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryCountRepository(q Querier) *InventoryCountRepo {
	return &InventoryCountRepo{q: q}
}

const countColumns = `id, company_id, warehouse_id, status, total_discrepancy, created_at, completed_at, created_by, approved_by`

// Create persiste cabecera y líneas (la cantidad de sistema queda
// fotografiada en las líneas al momento de crear).
func (r *InventoryCountRepo) Create(count *entity.InventoryCount) error {
	query := `
		INSERT INTO inventory_counts (` + countColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		count.ID, count.CompanyID, count.WarehouseID, string(count.Status),
		count.TotalDiscrepancy, count.CreatedAt, count.CompletedAt,
		count.CreatedBy, count.ApprovedBy,
	)
	if err != nil {
		return fmt.Errorf("create count: %w", err)
	}
	lineQuery := `
		INSERT INTO inventory_count_lines (id, count_id, product_id, system_quantity, actual_quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for _, line := range count.Lines {
		if _, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, line.CountID, line.ProductID,
			line.SystemQuantity, line.ActualQuantity,
		); err != nil {
			return fmt.Errorf("create count line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el conteo con sus líneas, o nil si no existe.
func (r *InventoryCountRepo) GetByID(id string) (*entity.InventoryCount, error) {
	query := `SELECT ` + countColumns + ` FROM inventory_counts WHERE id = $1`
	var c entity.InventoryCount
	var status string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.WarehouseID, &status,
		&c.TotalDiscrepancy, &c.CreatedAt, &c.CompletedAt,
		&c.CreatedBy, &c.ApprovedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get count: %w", err)
	}
	c.Status = entity.CountStatus(status)

	lineQuery := `
		SELECT id, count_id, product_id, system_quantity, actual_quantity
		FROM inventory_count_lines WHERE count_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get count lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.CountLine
		if err := rows.Scan(&l.ID, &l.CountID, &l.ProductID, &l.SystemQuantity, &l.ActualQuantity); err != nil {
			return nil, fmt.Errorf("scan count line: %w", err)
		}
		c.Lines = append(c.Lines, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update actualiza estado, fecha de cierre y aprobador.
func (r *InventoryCountRepo) Update(count *entity.InventoryCount) error {
	query := `
		UPDATE inventory_counts
		SET status = $2, total_discrepancy = $3, completed_at = $4, approved_by = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		count.ID, string(count.Status), count.TotalDiscrepancy,
		count.CompletedAt, count.ApprovedBy)
	if err != nil {
		return fmt.Errorf("update count: %w", err)
	}
	return nil
}

// ListByWarehouse lista los conteos de una bodega (cabeceras, sin líneas).
func (r *InventoryCountRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryCount, error) {
	query := `
		SELECT ` + countColumns + `
		FROM inventory_counts WHERE warehouse_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list counts: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryCount
	for rows.Next() {
		var c entity.InventoryCount
		var status string
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.WarehouseID, &status,
			&c.TotalDiscrepancy, &c.CreatedAt, &c.CompletedAt,
			&c.CreatedBy, &c.ApprovedBy); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		c.Status = entity.CountStatus(status)
		list = append(list, &c)
	}
	return list, rows.Err()
}
