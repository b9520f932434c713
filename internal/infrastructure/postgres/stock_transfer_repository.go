package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo implementación de StockTransferRepository sobre PostgreSQL (usable con pool o tx).
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

const transferColumns = `id, company_id, from_warehouse_id, to_warehouse_id, status, notes, created_at, updated_at, created_by`

// Create persiste cabecera y líneas.
func (r *StockTransferRepo) Create(transfer *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.CompanyID, transfer.FromWarehouseID, transfer.ToWarehouseID,
		string(transfer.Status), transfer.Notes,
		transfer.CreatedAt, transfer.UpdatedAt, transfer.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	lineQuery := `
		INSERT INTO stock_transfer_lines (id, transfer_id, product_id, requested_quantity, received_quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for _, line := range transfer.Lines {
		if _, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, line.TransferID, line.ProductID,
			line.RequestedQuantity, line.ReceivedQuantity,
		); err != nil {
			return fmt.Errorf("create transfer line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el traslado con sus líneas, o nil si no existe.
func (r *StockTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1`
	var t entity.StockTransfer
	var status string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.CompanyID, &t.FromWarehouseID, &t.ToWarehouseID,
		&status, &t.Notes, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	t.Status = entity.TransferStatus(status)

	lineQuery := `
		SELECT id, transfer_id, product_id, requested_quantity, received_quantity
		FROM stock_transfer_lines WHERE transfer_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get transfer lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.ProductID, &l.RequestedQuantity, &l.ReceivedQuantity); err != nil {
			return nil, fmt.Errorf("scan transfer line: %w", err)
		}
		t.Lines = append(t.Lines, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update actualiza estado y notas de la cabecera.
func (r *StockTransferRepo) Update(transfer *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers SET status = $2, notes = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, string(transfer.Status), transfer.Notes, transfer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// UpdateLine actualiza la cantidad recibida de una línea.
func (r *StockTransferRepo) UpdateLine(line *entity.TransferLine) error {
	query := `UPDATE stock_transfer_lines SET received_quantity = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, line.ID, line.ReceivedQuantity)
	if err != nil {
		return fmt.Errorf("update transfer line: %w", err)
	}
	return nil
}

// ListByCompany lista los traslados de una empresa (cabeceras, sin líneas).
func (r *StockTransferRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockTransfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM stock_transfers WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransfer
	for rows.Next() {
		var t entity.StockTransfer
		var status string
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.FromWarehouseID, &t.ToWarehouseID,
			&status, &t.Notes, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		t.Status = entity.TransferStatus(status)
		list = append(list, &t)
	}
	return list, rows.Err()
}
