package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación de StockAdjustmentRepository sobre PostgreSQL (usable con pool o tx).
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

const adjustmentColumns = `id, company_id, product_id, warehouse_id, kind, quantity, quantity_before, quantity_after,
		status, reason, reject_reason, created_at, updated_at, created_by, approved_by`

// Create persiste la propuesta de ajuste.
func (r *StockAdjustmentRepo) Create(adjustment *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.CompanyID, adjustment.ProductID, adjustment.WarehouseID,
		string(adjustment.Kind), adjustment.Quantity, adjustment.QuantityBefore, adjustment.QuantityAfter,
		string(adjustment.Status), adjustment.Reason, adjustment.RejectReason,
		adjustment.CreatedAt, adjustment.UpdatedAt, adjustment.CreatedBy, adjustment.ApprovedBy,
	)
	if err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene el ajuste, o nil si no existe.
func (r *StockAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustments WHERE id = $1`
	var a entity.StockAdjustment
	var kind, status string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.CompanyID, &a.ProductID, &a.WarehouseID,
		&kind, &a.Quantity, &a.QuantityBefore, &a.QuantityAfter,
		&status, &a.Reason, &a.RejectReason,
		&a.CreatedAt, &a.UpdatedAt, &a.CreatedBy, &a.ApprovedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	a.Kind = entity.AdjustmentKind(kind)
	a.Status = entity.AdjustmentStatus(status)
	return &a, nil
}

// Update actualiza estado, cantidades resultantes y aprobador.
func (r *StockAdjustmentRepo) Update(adjustment *entity.StockAdjustment) error {
	query := `
		UPDATE stock_adjustments
		SET quantity_before = $2, quantity_after = $3, status = $4,
		    reject_reason = $5, approved_by = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.QuantityBefore, adjustment.QuantityAfter,
		string(adjustment.Status), adjustment.RejectReason, adjustment.ApprovedBy,
		adjustment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update adjustment: %w", err)
	}
	return nil
}

// ListByCompany lista los ajustes de una empresa.
func (r *StockAdjustmentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM stock_adjustments WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		var kind, status string
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.ProductID, &a.WarehouseID,
			&kind, &a.Quantity, &a.QuantityBefore, &a.QuantityAfter,
			&status, &a.Reason, &a.RejectReason,
			&a.CreatedAt, &a.UpdatedAt, &a.CreatedBy, &a.ApprovedBy); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		a.Kind = entity.AdjustmentKind(kind)
		a.Status = entity.AdjustmentStatus(status)
		list = append(list, &a)
	}
	return list, rows.Err()
}
