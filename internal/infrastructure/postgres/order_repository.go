package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, company_id, customer_id, status, subtotal, tax, discount, total, reason, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.CustomerID, string(order.Status),
		order.Subtotal, order.Tax, order.Discount, order.Total, order.Reason,
		order.CreatedAt, order.UpdatedAt, order.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	lineQuery := `
		INSERT INTO order_lines (id, order_id, product_id, warehouse_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, line := range order.Lines {
		if _, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, line.OrderID, line.ProductID, line.WarehouseID,
			line.Quantity, line.UnitPrice, line.Subtotal,
		); err != nil {
			return fmt.Errorf("create order line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT id, company_id, customer_id, status, subtotal, tax, discount, total, reason, created_at, updated_at, created_by
		FROM orders WHERE id = $1`
	var o entity.Order
	var status string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CompanyID, &o.CustomerID, &status,
		&o.Subtotal, &o.Tax, &o.Discount, &o.Total, &o.Reason,
		&o.CreatedAt, &o.UpdatedAt, &o.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.Status = entity.OrderStatus(status)

	lines, err := r.linesByOrder(id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *OrderRepo) linesByOrder(orderID string) ([]*entity.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, warehouse_id, quantity, unit_price, subtotal
		FROM order_lines WHERE order_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.WarehouseID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// Update actualiza estado y motivo de la cabecera.
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET status = $2, reason = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, string(order.Status), order.Reason, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// ListByCustomer lista órdenes de un cliente (cabeceras, sin líneas).
func (r *OrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, company_id, customer_id, status, subtotal, tax, discount, total, reason, created_at, updated_at, created_by
		FROM orders WHERE customer_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		var status string
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.CustomerID, &status,
			&o.Subtotal, &o.Tax, &o.Discount, &o.Total, &o.Reason,
			&o.CreatedAt, &o.UpdatedAt, &o.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = entity.OrderStatus(status)
		list = append(list, &o)
	}
	return list, rows.Err()
}
