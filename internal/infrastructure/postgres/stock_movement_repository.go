package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL. Solo INSERT y
// SELECT: la tabla no tiene UPDATE ni DELETE en ningún camino del código.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, warehouse_id, kind, quantity, quantity_before, quantity_after,
		dest_warehouse_id, reference, reason, date, created_at, created_by`

// Create persiste un movimiento. El constraint de la tabla verifica
// quantity_after = quantity_before + quantity.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if !movement.QuantityAfter.Equal(movement.QuantityBefore.Add(movement.Quantity)) {
		return fmt.Errorf("create movement: after != before + delta")
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	dest := (*string)(nil)
	if movement.DestWarehouseID != "" {
		dest = &movement.DestWarehouseID
	}
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.WarehouseID, string(movement.Kind),
		movement.Quantity, movement.QuantityBefore, movement.QuantityAfter,
		dest, movement.Reference, movement.Reason, movement.Date, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID, o nil si no existe.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	m, err := scanMovementRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List lista movimientos filtrando por producto, bodega y rango de fechas,
// del más reciente al más antiguo.
func (r *StockMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, filter.Offset)

	return r.list(query, args, "list movements")
}

// ListByReference localiza los movimientos causados por un documento, en
// orden de creación (lectura de compensación: la cancelación de una orden
// busca sus salidas OUT_SALE para saber desde qué bodega se despachó).
func (r *StockMovementRepo) ListByReference(reference string, kind entity.MovementKind) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE reference = $1 AND kind = $2
		ORDER BY created_at ASC, id ASC`
	return r.list(query, []any{reference, string(kind)}, "list movements by reference")
}

func (r *StockMovementRepo) list(query string, args []any, op string) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovementRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovementRow(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var kind string
	var dest, createdBy *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.WarehouseID, &kind,
		&m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
		&dest, &m.Reference, &m.Reason, &m.Date, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	if dest != nil {
		m.DestWarehouseID = *dest
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}
